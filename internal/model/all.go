package model

// All 参与 AutoMigrate 的全部实体
func All() []any {
	return []any{
		&UserInfo{},
		&UserPreference{},
		&Pet{},
		&Application{},
		&SavedPublication{},
	}
}
