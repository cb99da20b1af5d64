package folder

type AccessFolder struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
}

func (AccessFolder) TableName() string { return "access_folders" }
