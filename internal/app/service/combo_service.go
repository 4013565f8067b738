package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/repository"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrComboNotFound         = errors.New("combo not found")
	ErrComboProductsNotFound = errors.New("products not found or not active")
	ErrComboEmpty            = errors.New("combo has no products")
	ErrComboInactiveProduct  = errors.New("combo contains inactive products")
)

const (
	maxComboNameLen        = 160
	maxComboDescriptionLen = 160
)

// ProductQuantity is one normalized combo line.
type ProductQuantity struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// NormalizeProductsPayload validates the addedProducts payload and merges
// repeated product ids by summing their quantities. The result keeps the order
// in which each product id first appeared.
func NormalizeProductsPayload(raw []byte) ([]ProductQuantity, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var entries []map[string]interface{}
	if err := dec.Decode(&entries); err != nil {
		return nil, invalidf("addedProducts must be an array of {productId, quantity}")
	}
	if len(entries) == 0 {
		return nil, invalidf("addedProducts must not be empty")
	}

	lines := make([]ProductQuantity, 0, len(entries))
	for i, entry := range entries {
		productID, ok := positiveInt(firstOf(entry, "productId", "product_id"))
		if !ok {
			return nil, invalidf("addedProducts[%d].productId must be a positive integer", i)
		}
		quantity, ok := positiveInt(entry["quantity"])
		if !ok {
			return nil, invalidf("addedProducts[%d].quantity must be a positive integer", i)
		}
		lines = append(lines, ProductQuantity{ProductID: uint(productID), Quantity: int(quantity)})
	}
	return aggregateQuantities(lines)
}

func firstOf(m map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

// positiveInt accepts JSON integers and integer strings.
func positiveInt(v interface{}) (int64, bool) {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// aggregateQuantities sums quantities per product id in first-seen order.
func aggregateQuantities(lines []ProductQuantity) ([]ProductQuantity, error) {
	if len(lines) == 0 {
		return nil, invalidf("addedProducts must not be empty")
	}
	index := make(map[uint]int, len(lines))
	out := make([]ProductQuantity, 0, len(lines))
	for _, l := range lines {
		if l.ProductID == 0 || l.Quantity <= 0 {
			return nil, invalidf("product id and quantity must be positive integers")
		}
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out, nil
}

type ComboInput struct {
	RestaurantID  uint
	Name          string
	Description   string
	Price         float64
	Status        model.Status
	AddedProducts []ProductQuantity
	Photo         string
}

type ComboService interface {
	Create(actor Actor, input ComboInput) (*model.Combo, error)
	Update(actor Actor, id uint, input ComboInput) (*model.Combo, string, error)
	Activate(actor Actor, id, restaurantID uint) (*model.Combo, error)
	Deactivate(actor Actor, id, restaurantID uint) (*model.Combo, error)
	Delete(actor Actor, id, restaurantID uint) (*model.Combo, error)
	Restore(actor Actor, id, restaurantID uint) (*model.Combo, error)
	Get(id uint, viewer *Actor) (*model.Combo, error)
	ListMine(actor Actor) ([]model.Combo, error)
	ListDeleted(actor Actor, restaurantID uint) ([]model.Combo, error)
	ListPublic(restaurantID uint) ([]model.Combo, error)
}

type comboService struct {
	db          *gorm.DB
	comboRepo   repository.ComboRepository
	productRepo repository.ProductRepository
}

func NewComboService(db *gorm.DB, comboRepo repository.ComboRepository, productRepo repository.ProductRepository) ComboService {
	return &comboService{
		db:          db,
		comboRepo:   comboRepo,
		productRepo: productRepo,
	}
}

func validateComboInput(input *ComboInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return invalidf("name is required")
	}
	if utf8.RuneCountInString(input.Name) > maxComboNameLen {
		return invalidf("name must be at most %d characters", maxComboNameLen)
	}
	if utf8.RuneCountInString(input.Description) > maxComboDescriptionLen {
		return invalidf("description must be at most %d characters", maxComboDescriptionLen)
	}
	if input.Price < 0 {
		return invalidf("price must not be negative")
	}

	lines, err := aggregateQuantities(input.AddedProducts)
	if err != nil {
		return err
	}
	input.AddedProducts = lines
	return nil
}

// checkProducts is a single membership count: every wanted product must be an
// active product of the restaurant.
func checkProducts(repo repository.ProductRepository, restaurantID uint, lines []ProductQuantity) error {
	ids := make([]uint, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}
	found, err := repo.FindByIDsForRestaurant(restaurantID, ids, model.StatusActive)
	if err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}

	present := make(map[uint]bool, len(found))
	for _, p := range found {
		present[p.ID] = true
	}
	return fmt.Errorf("%w: %s", ErrComboProductsNotFound, idList(missingIDs(ids, present)))
}

func (s *comboService) Create(actor Actor, input ComboInput) (*model.Combo, error) {
	if err := actor.authorizeRestaurant(input.RestaurantID); err != nil {
		return nil, err
	}
	if err := validateComboInput(&input); err != nil {
		return nil, err
	}
	status, err := creationStatus(input.Status)
	if err != nil {
		return nil, err
	}

	var combo *model.Combo
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkProducts(s.productRepo.WithTx(tx), input.RestaurantID, input.AddedProducts); err != nil {
			return err
		}

		combo = &model.Combo{
			RestaurantID: input.RestaurantID,
			Name:         input.Name,
			Description:  input.Description,
			Price:        input.Price,
			Photo:        input.Photo,
			Audit:        model.Audit{CreatedBy: actor.Name, UpdatedBy: actor.Name},
		}
		combo.SetStatus(status)

		combos := s.comboRepo.WithTx(tx)
		if err := combos.Create(combo); err != nil {
			return err
		}

		items := make([]model.ComboItem, len(input.AddedProducts))
		for i, line := range input.AddedProducts {
			items[i] = model.ComboItem{ComboID: combo.ID, ProductID: line.ProductID, Quantity: line.Quantity}
			items[i].SetStatus(status)
		}
		if err := combos.CreateItems(items); err != nil {
			return err
		}
		combo.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Combo created", map[string]interface{}{
		"combo_id":      combo.ID,
		"restaurant_id": combo.RestaurantID,
		"items":         len(combo.Items),
	})
	return combo, nil
}

func (s *comboService) load(repo repository.ComboRepository, id, restaurantID uint) (*model.Combo, error) {
	combo, err := repo.FindWithItems(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComboNotFound
		}
		return nil, err
	}
	if combo.RestaurantID != restaurantID {
		return nil, ErrComboNotFound
	}
	return combo, nil
}

// Update reconciles the item set in one transaction: kept products are updated
// in place, dropped ones are hard-deleted and new ones are inserted.
func (s *comboService) Update(actor Actor, id uint, input ComboInput) (*model.Combo, string, error) {
	if err := actor.authorizeRestaurant(input.RestaurantID); err != nil {
		return nil, "", err
	}
	if err := validateComboInput(&input); err != nil {
		return nil, "", err
	}

	var combo *model.Combo
	var replaced string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		combos := s.comboRepo.WithTx(tx)

		var err error
		combo, err = s.load(combos, id, input.RestaurantID)
		if err != nil {
			return err
		}
		if combo.IsDeleted {
			return ErrComboNotFound
		}

		status := combo.Status
		if input.Status != "" {
			if status, err = creationStatus(input.Status); err != nil {
				return err
			}
		}

		if err := checkProducts(s.productRepo.WithTx(tx), input.RestaurantID, input.AddedProducts); err != nil {
			return err
		}

		existing := make(map[uint]*model.ComboItem, len(combo.Items))
		for i := range combo.Items {
			existing[combo.Items[i].ProductID] = &combo.Items[i]
		}

		wanted := make(map[uint]bool, len(input.AddedProducts))
		var fresh []model.ComboItem
		for _, line := range input.AddedProducts {
			wanted[line.ProductID] = true
			if item, ok := existing[line.ProductID]; ok {
				if item.Quantity != line.Quantity || item.Status != status {
					item.Quantity = line.Quantity
					item.SetStatus(status)
					if err := combos.UpdateItem(item); err != nil {
						return err
					}
				}
				continue
			}
			item := model.ComboItem{ComboID: combo.ID, ProductID: line.ProductID, Quantity: line.Quantity}
			item.SetStatus(status)
			fresh = append(fresh, item)
		}

		var stale []uint
		for productID, item := range existing {
			if !wanted[productID] {
				stale = append(stale, item.ID)
			}
		}
		if err := combos.DeleteItems(stale); err != nil {
			return err
		}
		if err := combos.CreateItems(fresh); err != nil {
			return err
		}

		combo.Name = input.Name
		combo.Description = input.Description
		combo.Price = input.Price
		combo.SetStatus(status)
		combo.UpdatedBy = actor.Name
		if input.Photo != "" && input.Photo != combo.Photo {
			replaced = combo.Photo
			combo.Photo = input.Photo
		}
		if err := combos.Update(combo); err != nil {
			return err
		}

		logger.Info("Combo items reconciled", map[string]interface{}{
			"combo_id": combo.ID,
			"added":    len(fresh),
			"removed":  len(stale),
		})
		combo, err = combos.FindWithItems(combo.ID)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return combo, replaced, nil
}

// activationGate requires at least one item and every item's product active.
func activationGate(combo *model.Combo) error {
	if len(combo.Items) == 0 {
		return ErrComboEmpty
	}
	var inactive []uint
	for _, item := range combo.Items {
		if item.Product == nil || !item.Product.IsActive {
			inactive = append(inactive, item.ProductID)
		}
	}
	if len(inactive) > 0 {
		return fmt.Errorf("%w: %s", ErrComboInactiveProduct, idList(inactive))
	}
	return nil
}

func (s *comboService) Activate(actor Actor, id, restaurantID uint) (*model.Combo, error) {
	return s.transition(actor, id, restaurantID, model.StatusActive, true, model.StatusDeactivated, model.StatusPending)
}

func (s *comboService) Deactivate(actor Actor, id, restaurantID uint) (*model.Combo, error) {
	return s.transition(actor, id, restaurantID, model.StatusDeactivated, false, model.StatusActive)
}

// Delete is soft and cascades to every item.
func (s *comboService) Delete(actor Actor, id, restaurantID uint) (*model.Combo, error) {
	return s.transition(actor, id, restaurantID, model.StatusDeleted, false, model.StatusActive, model.StatusDeactivated, model.StatusPending)
}

// Restore lands in active, so it passes the same gate as Activate.
func (s *comboService) Restore(actor Actor, id, restaurantID uint) (*model.Combo, error) {
	return s.transition(actor, id, restaurantID, model.StatusActive, true, model.StatusDeleted)
}

func (s *comboService) transition(actor Actor, id, restaurantID uint, next model.Status, gated bool, from ...model.Status) (*model.Combo, error) {
	if err := actor.authorizeRestaurant(restaurantID); err != nil {
		return nil, err
	}

	var combo *model.Combo
	err := s.db.Transaction(func(tx *gorm.DB) error {
		combos := s.comboRepo.WithTx(tx)

		var err error
		combo, err = s.load(combos, id, restaurantID)
		if err != nil {
			return err
		}
		if err := requireStatus("combo", combo.Status, from...); err != nil {
			return err
		}
		if gated {
			if err := activationGate(combo); err != nil {
				logger.Warn("Combo activation rejected", map[string]interface{}{
					"combo_id": combo.ID,
					"reason":   err.Error(),
				})
				return err
			}
		}
		return combos.SetStatus(combo.ID, next, actor.Name)
	})
	if err != nil {
		return nil, err
	}

	combo.SetStatus(next)
	combo.UpdatedBy = actor.Name
	for i := range combo.Items {
		combo.Items[i].SetStatus(next)
	}
	logger.Info("Combo status changed", map[string]interface{}{
		"combo_id": combo.ID,
		"status":   next,
	})
	return combo, nil
}

// Get shows non-active combos to their owner only.
func (s *comboService) Get(id uint, viewer *Actor) (*model.Combo, error) {
	combo, err := s.comboRepo.FindWithItems(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComboNotFound
		}
		return nil, err
	}
	owner := viewer != nil && viewer.Role == model.RoleRestaurant && viewer.ID == combo.RestaurantID
	if !owner && !combo.IsActive {
		return nil, ErrComboNotFound
	}
	return combo, nil
}

func (s *comboService) ListMine(actor Actor) ([]model.Combo, error) {
	if err := actor.authorizeRestaurant(actor.ID); err != nil {
		return nil, err
	}
	return s.comboRepo.ListByRestaurant(actor.ID, model.StatusActive, model.StatusDeactivated, model.StatusPending)
}

func (s *comboService) ListDeleted(actor Actor, restaurantID uint) ([]model.Combo, error) {
	if err := actor.authorizeRestaurant(restaurantID); err != nil {
		return nil, err
	}
	return s.comboRepo.ListByRestaurant(restaurantID, model.StatusDeleted)
}

func (s *comboService) ListPublic(restaurantID uint) ([]model.Combo, error) {
	return s.comboRepo.ListByRestaurant(restaurantID, model.StatusActive)
}
