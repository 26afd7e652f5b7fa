package main

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/proveo-app/proveo/app/models"
	"github.com/proveo-app/proveo/app/repository"
	"github.com/proveo-app/proveo/internal/pkg/database"
	"github.com/proveo-app/proveo/internal/pkg/env"
	"github.com/proveo-app/proveo/internal/pkg/slugs"
)

const annualDiscount = 0.15

// defaultCatalog maps each default rubric to its subrubrics. Seeding is
// idempotent by slug, so the command can run on every deploy.
var defaultCatalog = map[string][]string{
	"Mantenimiento": {
		"Plomería", "Electricidad", "Gasista matriculado", "Pintura",
		"Albañilería", "Herrería", "Carpintería", "Cerrajería", "Vidriería",
		"Impermeabilización", "Techista", "Aire acondicionado / Refrigeración",
		"Calefacción / Calderas", "Bombas de agua / Hidráulica",
	},
	"Ascensores": {
		"Mantenimiento de ascensores", "Reparación",
		"Inspecciones / certificaciones", "Montacargas",
	},
	"Limpieza": {
		"Limpieza general", "Limpieza final de obra", "Pulido / encerado",
		"Limpieza de vidrios", "Limpieza en altura",
	},
	"Jardinería y espacios verdes": {
		"Jardinería", "Poda", "Paisajismo", "Riego", "Terrazas verdes",
	},
	"Seguridad": {
		"Vigilancia", "CCTV / Cámaras", "Alarmas", "Control de acceso",
		"Portero eléctrico", "Cerco eléctrico",
	},
	"Plagas y sanitización": {
		"Fumigación", "Desratización", "Desinfección", "Control de palomas",
		"Limpieza / desinfección de tanques",
	},
	"Incendio y seguridad e higiene": {
		"Matafuegos", "Sistemas contra incendio", "Señalética",
		"Plan de evacuación", "Auditorías / informes",
	},
	"Obras y reformas": {
		"Reformas integrales", "Durlock / yesería", "Revestimientos",
		"Andamios", "Demoliciones",
	},
	"Aberturas y persianas": {
		"Aluminio / aberturas", "Persianas", "Cortinas de enrollar",
		"Mosquiteros",
	},
	"Servicios profesionales": {
		"Arquitectura", "Ingeniería", "Contador", "Abogado", "Gestoría",
		"Seguros",
	},
	"Logística y residuos": {
		"Volquetes / escombros", "Retiro de muebles", "Mudanzas", "Fletes",
	},
	"Amenities": {
		"Mantenimiento de pileta", "Parrillas / SUM", "Gimnasio (mantenimiento)",
	},
}

// Seeds the default rubric catalog and the plan ladder. Safe to rerun.
func main() {
	env.SetupEnvFile()
	database.SetupDatabase()

	repos := repository.NewRepositories(database.GetDB())

	cats, subs, err := seedCatalog(repos)
	if err != nil {
		log.Fatalf("catalog seed failed: %v", err)
	}
	log.Printf("catalog seeded: categories_created=%d subcategories_created=%d", cats, subs)

	plans, err := seedPlans(repos.Plan)
	if err != nil {
		log.Fatalf("plan seed failed: %v", err)
	}
	log.Printf("plans seeded: created=%d", plans)
}

func seedCatalog(repos *repository.Repositories) (createdCats, createdSubs int, err error) {
	for catName, subNames := range defaultCatalog {
		category, err := repos.Category.GetBySlug(slugs.Make(catName))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = &models.Category{Name: catName, Active: true}
			if err := repos.Category.Create(category); err != nil {
				return createdCats, createdSubs, err
			}
			createdCats++
		} else if err != nil {
			return createdCats, createdSubs, err
		}

		for _, subName := range subNames {
			// Canonical slug: "<category-slug>-<sub-name>".
			expected := slugs.Make(category.Slug + "-" + subName)
			if _, err := repos.Subcategory.GetBySlug(expected); err == nil {
				continue
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return createdCats, createdSubs, err
			}

			sub := &models.Subcategory{
				CategoryID: category.ID,
				Name:       subName,
				Active:     true,
			}
			if err := repos.Subcategory.Create(sub); err != nil {
				return createdCats, createdSubs, err
			}
			createdSubs++
		}
	}
	return createdCats, createdSubs, nil
}

func seedPlans(planRepo repository.PlanRepository) (created int, err error) {
	monthly := []models.Plan{
		{Code: "BASIC_MONTHLY", Name: "Basic (Mensual)", Tier: 1, IntervalMonths: 1, PriceCents: 20000 * 100},
		{Code: "SILVER_MONTHLY", Name: "Silver (Mensual)", Tier: 2, IntervalMonths: 1, PriceCents: 50000 * 100},
		{Code: "GOLD_MONTHLY", Name: "Gold (Mensual)", Tier: 3, IntervalMonths: 1, PriceCents: 80000 * 100},
	}

	plans := make([]models.Plan, 0, 2*len(monthly))
	for _, p := range monthly {
		yearly := p
		yearly.Code = strings.Replace(p.Code, "_MONTHLY", "_YEARLY", 1)
		yearly.Name = strings.Replace(p.Name, "(Mensual)", "(Anual)", 1)
		yearly.IntervalMonths = 12
		yearly.PriceCents = int(float64(p.PriceCents) * 12 * (1 - annualDiscount))
		plans = append(plans, p, yearly)
	}

	for i := range plans {
		plans[i].Currency = "ARS"
		plans[i].Active = true
		if _, err := planRepo.GetActiveByCode(plans[i].Code); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}
		if err := planRepo.Create(&plans[i]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
