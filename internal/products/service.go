package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adaezeodina/beautyhub-backend/pkg/db"
	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
	pkgerrors "github.com/adaezeodina/beautyhub-backend/pkg/errors"
	"github.com/adaezeodina/beautyhub-backend/pkg/outbox"
	"github.com/adaezeodina/beautyhub-backend/pkg/outbox/payloads"
	"github.com/adaezeodina/beautyhub-backend/pkg/pagination"
	"github.com/adaezeodina/beautyhub-backend/pkg/types"
)

// Service exposes vendor product management plus the public catalog reads.
type Service interface {
	Create(ctx context.Context, vendorID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, vendorID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, vendorID, productID uuid.UUID) error
	Publish(ctx context.Context, vendorID, productID uuid.UUID) (*ProductDTO, error)
	Unpublish(ctx context.Context, vendorID, productID uuid.UUID) (*ProductDTO, error)
	AdjustStock(ctx context.Context, vendorID, productID uuid.UUID, delta int) (*ProductDTO, error)
	Get(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	ListMine(ctx context.Context, vendorID uuid.UUID) ([]ProductDTO, error)
}

type vendorLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type mediaReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error)
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	vendors  vendorLoader
	media    mediaReader
	outbox   outboxEmitter
}

// ServiceParams bundles the product service dependencies.
type ServiceParams struct {
	Repo     *Repository
	DB       *db.Client
	Vendors  vendorLoader
	Media    mediaReader
	Outbox   outboxEmitter
}

// NewService constructs a product service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	if params.Vendors == nil {
		return nil, fmt.Errorf("vendor loader required")
	}
	if params.Media == nil {
		return nil, fmt.Errorf("media reader required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	return &service{
		repo:     params.Repo,
		dbClient: params.DB,
		vendors:  params.Vendors,
		media:    params.Media,
		outbox:   params.Outbox,
	}, nil
}

func (s *service) Create(ctx context.Context, vendorID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if err := s.requireVerifiedVendor(ctx, vendorID); err != nil {
		return nil, err
	}
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	images, err := s.resolveImages(ctx, vendorID, input.ImageMediaIDs)
	if err != nil {
		return nil, err
	}

	row := &models.Product{
		VendorID:      vendorID,
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		Category:      input.Category,
		Status:        enums.ProductDraft,
		PriceCents:    priceToCents(input.Price),
		Currency:      "USD",
		StockQuantity: input.StockQuantity,
		HairType:      input.HairType,
		HairTexture:   input.HairTexture,
		LengthInches:  input.LengthInches,
		Color:         input.Color,
		Tags:          input.Tags,
		Images:        images,
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, vendorID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	row, err := s.loadOwned(ctx, vendorID, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
		}
		row.Name = name
	}
	if input.Description != nil {
		row.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
		}
		row.Category = *input.Category
	}
	if input.Price != nil {
		if input.Price.IsNegative() || input.Price.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		row.PriceCents = priceToCents(*input.Price)
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		row.StockQuantity = *input.StockQuantity
	}
	if input.HairType != nil {
		row.HairType = input.HairType
	}
	if input.HairTexture != nil {
		row.HairTexture = input.HairTexture
	}
	if input.LengthInches != nil {
		row.LengthInches = input.LengthInches
	}
	if input.Color != nil {
		row.Color = input.Color
	}
	if input.Tags != nil {
		row.Tags = *input.Tags
	}
	if input.ImageMediaIDs != nil {
		images, err := s.resolveImages(ctx, vendorID, *input.ImageMediaIDs)
		if err != nil {
			return nil, err
		}
		row.Images = images
	}

	saved, err := s.repo.Save(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return FromModel(saved), nil
}

func (s *service) Delete(ctx context.Context, vendorID, productID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, vendorID, productID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

// Publish flips the listing to active. The first activation, out of draft,
// queues a product.published event in the same transaction.
func (s *service) Publish(ctx context.Context, vendorID, productID uuid.UUID) (*ProductDTO, error) {
	row, err := s.loadOwned(ctx, vendorID, productID)
	if err != nil {
		return nil, err
	}
	if row.Status == enums.ProductActive {
		return FromModel(row), nil
	}
	if row.Status == enums.ProductDiscontinued {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "discontinued listings cannot be published")
	}
	firstPublish := row.Status == enums.ProductDraft

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).UpdateStatus(ctx, productID, enums.ProductActive); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "publish product")
		}
		if !firstPublish {
			return nil
		}
		err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventProductPublished,
			AggregateType: enums.AggregateProduct,
			AggregateID:   productID,
			Actor:         &outbox.ActorRef{UserID: vendorID, Role: string(enums.RoleVendor)},
			Data: payloads.ProductPublishedEvent{
				ProductID:  productID,
				VendorID:   vendorID,
				Name:       row.Name,
				Category:   row.Category,
				PriceCents: row.PriceCents,
			},
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "queue publish event")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	row.Status = enums.ProductActive
	return FromModel(row), nil
}

func (s *service) Unpublish(ctx context.Context, vendorID, productID uuid.UUID) (*ProductDTO, error) {
	row, err := s.loadOwned(ctx, vendorID, productID)
	if err != nil {
		return nil, err
	}
	if row.Status != enums.ProductActive && row.Status != enums.ProductOutOfStock {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "listing is not live")
	}
	if err := s.repo.UpdateStatus(ctx, productID, enums.ProductInactive); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unpublish product")
	}
	row.Status = enums.ProductInactive
	return FromModel(row), nil
}

func (s *service) AdjustStock(ctx context.Context, vendorID, productID uuid.UUID, delta int) (*ProductDTO, error) {
	if _, err := s.loadOwned(ctx, vendorID, productID); err != nil {
		return nil, err
	}
	applied, err := s.repo.AdjustStock(ctx, productID, delta)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adjust stock")
	}
	if !applied {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "stock cannot go negative")
	}
	row, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload product")
	}
	return FromModel(row), nil
}

// Get returns an active listing for public readers.
func (s *service) Get(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	row, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if row.Status != enums.ProductActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return FromModel(row), nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(input.Pagination.Limit)

	rows, err := s.repo.ListActive(ctx, input.Filters, cursor, pagination.LimitWithBuffer(input.Pagination.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	result := &ListResult{Products: make([]ProductDTO, 0, len(rows))}
	if len(rows) > limit {
		last := rows[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
		rows = rows[:limit]
	}
	for i := range rows {
		result.Products = append(result.Products, *FromModel(&rows[i]))
	}
	return result, nil
}

func (s *service) ListMine(ctx context.Context, vendorID uuid.UUID) ([]ProductDTO, error) {
	rows, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list vendor products")
	}
	result := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		result = append(result, *FromModel(&rows[i]))
	}
	return result, nil
}

func (s *service) requireVerifiedVendor(ctx context.Context, vendorID uuid.UUID) error {
	user, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load vendor")
	}
	if !user.IsVendor() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only vendors can manage listings")
	}
	if user.VerificationStatus != enums.VerificationApproved {
		return pkgerrors.New(pkgerrors.CodeForbidden, "vendor is not verified")
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, vendorID, productID uuid.UUID) (*models.Product, error) {
	row, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if row.VendorID != vendorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "listing belongs to another vendor")
	}
	return row, nil
}

func (s *service) resolveImages(ctx context.Context, vendorID uuid.UUID, mediaIDs []uuid.UUID) (types.Images, error) {
	images := make(types.Images, 0, len(mediaIDs))
	for i, mediaID := range mediaIDs {
		media, err := s.media.FindByID(ctx, mediaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown media reference")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load media")
		}
		if media.OwnerID != vendorID || media.Kind != enums.MediaProductImage || media.Status != enums.MediaUploaded {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "media must be an uploaded product image owned by the vendor")
		}
		url := ""
		if media.URL != nil {
			url = *media.URL
		}
		images = append(images, types.Image{
			URL:       url,
			GCSKey:    media.GCSKey,
			IsPrimary: i == 0,
		})
	}
	return images, nil
}

func validateCreateInput(input CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if input.Price.IsNegative() || input.Price.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if input.StockQuantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	return nil
}

func priceToCents(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
