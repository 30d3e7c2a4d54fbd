package domain

// User is read-only here; rows are written by other systems.
type User struct {
	ID         string  `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name       *string `gorm:"column:name;type:varchar(255)" json:"name"`
	LoginName  *string `gorm:"column:login_name;type:varchar(255)" json:"loginName"`
	Pwd        *string `gorm:"column:pwd;type:varchar(255)" json:"pwd"`
	AppKey     *string `gorm:"column:app_key;type:varchar(255)" json:"appKey"`
	UpdateTime *int64  `gorm:"column:update_time" json:"updateTime"`
	CreateTime *int64  `gorm:"column:create_time" json:"createTime"`
}

func (User) TableName() string { return "user" }
