// Package menuimport loads a restaurant menu from an xlsx sheet.
//
// The first sheet is read; row 1 is a header. Columns, in order:
// category, category short name, product, description, sale price,
// prep minutes, status. Rows sharing a category name are grouped in
// first-seen order.
package menuimport

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/service"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const (
	colCategory = iota
	colShortName
	colProduct
	colDescription
	colPrice
	colPrepMinutes
	colStatus
)

type Product struct {
	Name            string
	Description     string
	SalePrice       float64
	PrepTimeMinutes *int
}

type Category struct {
	Name      string
	ShortName string
	Status    model.Status
	Products  []Product
}

// RowError reports a row that could not be parsed. Row is 1-based as in the sheet.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// Read parses the workbook. Bad rows are skipped and returned alongside the menu.
func Read(r io.Reader) ([]Category, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("no sheets found in xlsx")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var (
		menu    []Category
		skipped []RowError
		index   = make(map[string]int)
	)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		rowNum := i + 1
		if blank(row) {
			continue
		}

		categoryName := cell(row, colCategory)
		productName := cell(row, colProduct)
		if categoryName == "" || productName == "" {
			skipped = append(skipped, RowError{Row: rowNum, Reason: "category and product are required"})
			continue
		}

		price, err := strconv.ParseFloat(cell(row, colPrice), 64)
		if err != nil || price < 0 {
			skipped = append(skipped, RowError{Row: rowNum, Reason: "sale price must be a non-negative number"})
			continue
		}

		var prep *int
		if raw := cell(row, colPrepMinutes); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				skipped = append(skipped, RowError{Row: rowNum, Reason: "prep minutes must be a non-negative integer"})
				continue
			}
			prep = &n
		}

		status := model.StatusActive
		if raw := strings.ToLower(cell(row, colStatus)); raw != "" {
			status = model.Status(raw)
			if status != model.StatusActive && status != model.StatusDeactivated {
				skipped = append(skipped, RowError{Row: rowNum, Reason: "status must be active or deactivated"})
				continue
			}
		}

		key := strings.ToLower(categoryName)
		pos, ok := index[key]
		if !ok {
			pos = len(menu)
			index[key] = pos
			menu = append(menu, Category{
				Name:      categoryName,
				ShortName: cell(row, colShortName),
				Status:    status,
			})
		}
		menu[pos].Products = append(menu[pos].Products, Product{
			Name:            productName,
			Description:     cell(row, colDescription),
			SalePrice:       price,
			PrepTimeMinutes: prep,
		})
	}

	return menu, skipped, nil
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Summary counts what Import created.
type Summary struct {
	Categories int
	Products   int
}

// Import creates the menu through the catalog services acting as the
// restaurant, so every rule of manual creation applies. It stops at the
// first failure; rows created before it are kept.
func Import(actor service.Actor, categories service.CategoryService, products service.ProductService, menu []Category) (Summary, error) {
	var sum Summary
	for _, c := range menu {
		category, err := categories.Create(actor, service.CategoryInput{
			RestaurantID: actor.ID,
			Name:         c.Name,
			ShortName:    c.ShortName,
			Status:       c.Status,
		})
		if err != nil {
			return sum, fmt.Errorf("category %q: %w", c.Name, err)
		}
		sum.Categories++

		for _, p := range c.Products {
			if _, err := products.Create(actor, service.ProductInput{
				CategoryID:      category.ID,
				RestaurantID:    actor.ID,
				Name:            p.Name,
				Description:     p.Description,
				SalePrice:       p.SalePrice,
				PrepTimeMinutes: p.PrepTimeMinutes,
			}); err != nil {
				return sum, fmt.Errorf("product %q in %q: %w", p.Name, c.Name, err)
			}
			sum.Products++
		}

		logger.Info("Menu category imported", map[string]interface{}{
			"category_id": category.ID,
			"products":    len(c.Products),
		})
	}
	return sum, nil
}
