package database

import (
	"academy_backend/internal/config"
	"academy_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.Category{},
		&model.Instructor{},
		&model.Course{},
		&model.Participation{},
		&model.Exam{},
		&model.ExamQuestion{},
		&model.ExamSubmission{},
		&model.Comment{},
		&model.CourseReview{},
		&model.Certificate{},
		&model.Video{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认课程分类
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count == 0 {
		defaultCategories := []string{
			"安全生产",
			"质量管理",
			"Lean Production",
			"设备维护",
		}
		for _, title := range defaultCategories {
			db.Create(&model.Category{Title: title})
		}
	}

	return db, nil
}
