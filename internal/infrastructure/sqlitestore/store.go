// Package sqlitestore persiste las tablas de Achats y Stock en SQLite, de
// modo que el estado sobrevive sin depender del classeur Excel. El workbook
// queda como semilla de primera carga y formato de export.
package sqlitestore

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/vintage-erp/internal/domain/schema"
	"github.com/jhoicas/vintage-erp/internal/domain/table"
)

// PurchaseRecord fila persistida de la hoja Achats. Las columnas guardan el
// texto tal cual aparece en la tabla, sin tipar: el dominio es quien decide
// cómo interpretar cada celda.
type PurchaseRecord struct {
	RowID             uint   `gorm:"primaryKey;autoIncrement"`
	PurchaseID        string `gorm:"column:purchase_id;index"`
	Article           string
	Marque            string
	Genre             string
	Reference         string
	Grade             string
	Fournisseur       string
	DateAchat         string
	Mois              string
	MoisNum           string
	DateLivraison     string
	DelaiLivraison    string
	QuantiteCommandee string
	QuantiteRecue     string
	PrixUnitaireTTC   string
	FraisColissage    string
	FraisLavage       string
	TotalTTC          string
	Tracking          string
	DateMiseEnStock   string
}

func (PurchaseRecord) TableName() string { return "achats" }

// StockUnitRecord fila persistida de la hoja Stock (una pieza física).
type StockUnitRecord struct {
	RowID           uint   `gorm:"primaryKey;autoIncrement"`
	PurchaseID      string `gorm:"column:purchase_id;index"`
	SKU             string `gorm:"column:sku;index"`
	Reference       string
	Libelle         string
	Marque          string
	PrixVente       string
	Taille          string
	Lot             string
	DateLivraison   string
	DateMiseEnStock string
	Vendu           string
}

func (StockUnitRecord) TableName() string { return "stock" }

// Store acceso a la base SQLite local.
type Store struct {
	db *gorm.DB
}

// Open abre (o crea) la base en path y migra el esquema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("ouverture de la base %s: %w", path, err)
	}
	if err := db.AutoMigrate(&PurchaseRecord{}, &StockUnitRecord{}); err != nil {
		return nil, fmt.Errorf("migration du schéma: %w", err)
	}
	return &Store{db: db}, nil
}

// HasData indica si la base contiene al menos un achat o una pieza; decide
// si arrancamos desde la base o desde el workbook semilla.
func (s *Store) HasData() (bool, error) {
	var purchases, units int64
	if err := s.db.Model(&PurchaseRecord{}).Count(&purchases).Error; err != nil {
		return false, err
	}
	if err := s.db.Model(&StockUnitRecord{}).Count(&units).Error; err != nil {
		return false, err
	}
	return purchases > 0 || units > 0, nil
}

// LoadPurchases materializa la tabla Achats completa desde la base.
func (s *Store) LoadPurchases() (*table.Table, error) {
	var records []PurchaseRecord
	if err := s.db.Order("row_id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("lecture des achats: %w", err)
	}
	t := table.New(schema.AchatsHeaders)
	for _, r := range records {
		row := table.Row{}
		setIf := func(f table.Field, v string) {
			if v != "" {
				t.SetValue(row, f, v)
			}
		}
		setIf(schema.Achats.ID, r.PurchaseID)
		setIf(schema.Achats.Article, r.Article)
		setIf(schema.Achats.Marque, r.Marque)
		setIf(schema.Achats.Genre, r.Genre)
		setIf(schema.Achats.Reference, r.Reference)
		setIf(schema.Achats.Grade, r.Grade)
		setIf(schema.Achats.Fournisseur, r.Fournisseur)
		setIf(schema.Achats.DateAchat, r.DateAchat)
		setIf(schema.Achats.Mois, r.Mois)
		setIf(schema.Achats.MoisNum, r.MoisNum)
		setIf(schema.Achats.DateLivraison, r.DateLivraison)
		setIf(schema.Achats.DelaiLivraison, r.DelaiLivraison)
		setIf(schema.Achats.QuantiteCommandee, r.QuantiteCommandee)
		setIf(schema.Achats.QuantiteRecue, r.QuantiteRecue)
		setIf(schema.Achats.PrixUnitaireTTC, r.PrixUnitaireTTC)
		setIf(schema.Achats.FraisColissage, r.FraisColissage)
		setIf(schema.Achats.FraisLavage, r.FraisLavage)
		setIf(schema.Achats.TotalTTC, r.TotalTTC)
		setIf(schema.Achats.Tracking, r.Tracking)
		setIf(schema.Achats.DateMiseEnStock, r.DateMiseEnStock)
		t.Append(row)
	}
	return t, nil
}

// LoadStock materializa la tabla Stock completa desde la base.
func (s *Store) LoadStock() (*table.Table, error) {
	var records []StockUnitRecord
	if err := s.db.Order("row_id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("lecture du stock: %w", err)
	}
	t := table.New(schema.StockHeaders)
	for _, r := range records {
		row := table.Row{}
		setIf := func(f table.Field, v string) {
			if v != "" {
				t.SetValue(row, f, v)
			}
		}
		setIf(schema.Stock.ID, r.PurchaseID)
		setIf(schema.Stock.SKU, r.SKU)
		setIf(schema.Stock.Reference, r.Reference)
		setIf(schema.Stock.Libelle, r.Libelle)
		setIf(schema.Stock.Marque, r.Marque)
		setIf(schema.Stock.PrixVente, r.PrixVente)
		setIf(schema.Stock.Taille, r.Taille)
		setIf(schema.Stock.Lot, r.Lot)
		setIf(schema.Stock.DateLivraison, r.DateLivraison)
		setIf(schema.Stock.DateMiseEnStock, r.DateMiseEnStock)
		setIf(schema.Stock.Vendu, r.Vendu)
		t.Append(row)
	}
	return t, nil
}

// ReplaceAll reemplaza el contenido completo de ambas tablas en una sola
// transacción. Es la estrategia de persistencia del sistema: el estado en
// memoria es la verdad y la base es su foto.
func (s *Store) ReplaceAll(achats, stock *table.Table) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&PurchaseRecord{}).Error; err != nil {
			return fmt.Errorf("purge des achats: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&StockUnitRecord{}).Error; err != nil {
			return fmt.Errorf("purge du stock: %w", err)
		}
		for _, row := range achats.Rows() {
			record := PurchaseRecord{
				PurchaseID:        achats.Value(row, schema.Achats.ID),
				Article:           achats.Value(row, schema.Achats.Article),
				Marque:            achats.Value(row, schema.Achats.Marque),
				Genre:             achats.Value(row, schema.Achats.Genre),
				Reference:         achats.Value(row, schema.Achats.Reference),
				Grade:             achats.Value(row, schema.Achats.Grade),
				Fournisseur:       achats.Value(row, schema.Achats.Fournisseur),
				DateAchat:         achats.Value(row, schema.Achats.DateAchat),
				Mois:              achats.Value(row, schema.Achats.Mois),
				MoisNum:           achats.Value(row, schema.Achats.MoisNum),
				DateLivraison:     achats.Value(row, schema.Achats.DateLivraison),
				DelaiLivraison:    achats.Value(row, schema.Achats.DelaiLivraison),
				QuantiteCommandee: achats.Value(row, schema.Achats.QuantiteCommandee),
				QuantiteRecue:     achats.Value(row, schema.Achats.QuantiteRecue),
				PrixUnitaireTTC:   achats.Value(row, schema.Achats.PrixUnitaireTTC),
				FraisColissage:    achats.Value(row, schema.Achats.FraisColissage),
				FraisLavage:       achats.Value(row, schema.Achats.FraisLavage),
				TotalTTC:          achats.Value(row, schema.Achats.TotalTTC),
				Tracking:          achats.Value(row, schema.Achats.Tracking),
				DateMiseEnStock:   achats.Value(row, schema.Achats.DateMiseEnStock),
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("écriture d'un achat: %w", err)
			}
		}
		for _, row := range stock.Rows() {
			record := StockUnitRecord{
				PurchaseID:      stock.Value(row, schema.Stock.ID),
				SKU:             stock.Value(row, schema.Stock.SKU),
				Reference:       stock.Value(row, schema.Stock.Reference),
				Libelle:         stock.Value(row, schema.Stock.Libelle),
				Marque:          stock.Value(row, schema.Stock.Marque),
				PrixVente:       stock.Value(row, schema.Stock.PrixVente),
				Taille:          stock.Value(row, schema.Stock.Taille),
				Lot:             stock.Value(row, schema.Stock.Lot),
				DateLivraison:   stock.Value(row, schema.Stock.DateLivraison),
				DateMiseEnStock: stock.Value(row, schema.Stock.DateMiseEnStock),
				Vendu:           stock.Value(row, schema.Stock.Vendu),
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("écriture d'une pièce: %w", err)
			}
		}
		return nil
	})
}
