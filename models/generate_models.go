package models

import (
	"fmt"
	"log"
	"os"
	"sort"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Column Mismatch Report Usage:

This file contains functionality to generate a report of database columns that aren't
accounted for as fields in the corresponding Go model structs.

To generate the report:

1. Set the environment variable: GENERATE_COLUMN_REPORT=true
2. Run the application: go run .

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: vlog_videos ---
Found 1 columns not accounted for in model:
  - legacy_thumbnail

--- Table: carousels ---
All columns are accounted for in the model.

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// All lists every persisted model, in dependency order
func All() []any {
	return []any{
		&Carousel{},
		&CarouselItem{},
		&VlogVideo{},
		&HealingVideo{},
		&HealingProduct{},
		&StorefrontProduct{},
		&SpotifyPlaylist{},
		&PhotoAlbum{},
		&Recipe{},
	}
}

// GenerateModels migrates the schema and writes typed query helpers to ./generated
func GenerateModels(db *gorm.DB) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	// Set up verbose logging for migration
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	migrateDB := db.Session(&gorm.Session{
		Logger:                 newLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)

	fmt.Println("Migrating models...")
	if err := migrateDB.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("models migration: %w", err)
	}
	fmt.Println("Database migration completed successfully!")

	PrintColumnMismatchReport(GenerateColumnMismatchReport(db))

	g.Execute()
	fmt.Println("Model generation complete!")
	return nil
}

// TableReport lists the columns of one table that no model field maps to
type TableReport struct {
	Table      string
	Missing    bool
	Mismatches []string
}

// GenerateColumnMismatchReport compares the live columns of every model table with the model's fields
func GenerateColumnMismatchReport(db *gorm.DB) []TableReport {
	var reports []TableReport

	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			continue
		}
		report := TableReport{Table: stmt.Schema.Table}

		if !db.Migrator().HasTable(model) {
			report.Missing = true
			reports = append(reports, report)
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			report.Missing = true
			reports = append(reports, report)
			continue
		}

		modelFields := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			modelFields[name] = true
		}

		for _, column := range columnTypes {
			if !modelFields[column.Name()] {
				report.Mismatches = append(report.Mismatches, column.Name())
			}
		}
		sort.Strings(report.Mismatches)
		reports = append(reports, report)
	}

	return reports
}

// PrintColumnMismatchReport writes the report in the human-readable format described above
func PrintColumnMismatchReport(reports []TableReport) {
	fmt.Println("=== COLUMN MISMATCH REPORT ===")

	totalMismatches := 0
	for _, report := range reports {
		fmt.Printf("\n--- Table: %s ---\n", report.Table)
		switch {
		case report.Missing:
			fmt.Println("Table does not exist yet (will be created during migration)")
		case len(report.Mismatches) > 0:
			fmt.Printf("Found %d columns not accounted for in model:\n", len(report.Mismatches))
			for _, col := range report.Mismatches {
				fmt.Printf("  - %s\n", col)
			}
			totalMismatches += len(report.Mismatches)
		default:
			fmt.Println("All columns are accounted for in the model.")
		}
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Total mismatched columns across all tables: %d\n", totalMismatches)
}
