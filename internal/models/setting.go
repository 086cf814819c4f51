package models

import "gorm.io/datatypes"

// SettingModel is a key to JSON value store for site-wide configuration.
// Well-known keys: globalHeader, globalFooter.
type SettingModel struct {
	Base
	Key   string            `json:"key"   gorm:"size:191;uniqueIndex;not null"`
	Value datatypes.JSONMap `json:"value"`
}

func (SettingModel) TableName() string { return "settings" }
