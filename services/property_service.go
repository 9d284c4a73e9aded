package services

import (
	"errors"
	"fmt"

	"rental-backend/models"

	"gorm.io/gorm"
)

type PropertyService struct {
	DB *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{DB: db}
}

func (s *PropertyService) Create(property models.Property) (models.Property, error) {
	if err := s.DB.Create(&property).Error; err != nil {
		return models.Property{}, fmt.Errorf("save property: %w", err)
	}
	return property, nil
}

func (s *PropertyService) GetByID(id uint) (models.Property, error) {
	var property models.Property
	if err := s.DB.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Property{}, ErrPropertyNotFound
		}
		return models.Property{}, fmt.Errorf("load property: %w", err)
	}
	return property, nil
}

func (s *PropertyService) Update(id uint, updates map[string]interface{}) (models.Property, error) {
	property, err := s.GetByID(id)
	if err != nil {
		return models.Property{}, err
	}
	if err := s.DB.Model(&property).Updates(updates).Error; err != nil {
		return models.Property{}, fmt.Errorf("update property: %w", err)
	}
	return s.GetByID(id)
}
