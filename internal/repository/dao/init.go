package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&SpaceType{},
		&Space{},
		&Reservation{},
	)
	if err != nil {
		return err
	}

	return seedSpaceTypes(db)
}

// seedSpaceTypes inserts the default catalog classifications on first boot.
// A non-empty table is left untouched.
func seedSpaceTypes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&SpaceType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []SpaceType{
		{Name: "Sala de reuniones", Description: "Salas para reuniones de equipo"},
		{Name: "Auditorio", Description: "Espacios amplios para eventos y charlas"},
		{Name: "Laboratorio", Description: "Espacios equipados para trabajo práctico"},
		{Name: "Aula", Description: "Aulas de uso general"},
	}

	return db.Create(&defaults).Error
}
