package entity

// Department groups doctors by clinical unit
type Department struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Doctors []DoctorProfile `gorm:"foreignKey:DepartmentID" json:"doctors,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}
