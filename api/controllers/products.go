package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adaezeodina/beautyhub-backend/api/responses"
	"github.com/adaezeodina/beautyhub-backend/api/validators"
	productsvc "github.com/adaezeodina/beautyhub-backend/internal/products"
	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
	pkgerrors "github.com/adaezeodina/beautyhub-backend/pkg/errors"
	"github.com/adaezeodina/beautyhub-backend/pkg/logger"
	"github.com/adaezeodina/beautyhub-backend/pkg/pagination"
)

type createProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Category      string   `json:"category" validate:"required"`
	Price         string   `json:"price" validate:"required"`
	StockQuantity int      `json:"stock_quantity" validate:"min=0"`
	HairType      *string  `json:"hair_type,omitempty"`
	HairTexture   *string  `json:"hair_texture,omitempty"`
	LengthInches  *int     `json:"length_inches,omitempty" validate:"omitempty,min=1"`
	Color         *string  `json:"color,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	ImageMediaIDs []string `json:"image_media_ids,omitempty" validate:"omitempty,dive,uuid"`
}

func (req createProductRequest) toInput() (productsvc.CreateProductInput, error) {
	var input productsvc.CreateProductInput

	category, err := enums.ParseProductCategory(strings.TrimSpace(req.Category))
	if err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}

	hairType, err := parseOptionalEnum(req.HairType, enums.ParseHairType, "hair_type")
	if err != nil {
		return input, err
	}
	hairTexture, err := parseOptionalEnum(req.HairTexture, enums.ParseHairTexture, "hair_texture")
	if err != nil {
		return input, err
	}

	mediaIDs, err := parseUUIDList(req.ImageMediaIDs)
	if err != nil {
		return input, err
	}

	input = productsvc.CreateProductInput{
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		Category:      category,
		Price:         price,
		StockQuantity: req.StockQuantity,
		HairType:      hairType,
		HairTexture:   hairTexture,
		LengthInches:  req.LengthInches,
		Color:         req.Color,
		Tags:          req.Tags,
		ImageMediaIDs: mediaIDs,
	}
	return input, nil
}

type updateProductRequest struct {
	Name          *string   `json:"name,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Price         *string   `json:"price,omitempty"`
	StockQuantity *int      `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	HairType      *string   `json:"hair_type,omitempty"`
	HairTexture   *string   `json:"hair_texture,omitempty"`
	LengthInches  *int      `json:"length_inches,omitempty" validate:"omitempty,min=1"`
	Color         *string   `json:"color,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	ImageMediaIDs *[]string `json:"image_media_ids,omitempty" validate:"omitempty,dive,uuid"`
}

func (req updateProductRequest) toInput() (productsvc.UpdateProductInput, error) {
	var input productsvc.UpdateProductInput

	if req.Category != nil {
		category, err := enums.ParseProductCategory(strings.TrimSpace(*req.Category))
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &category
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*req.Price))
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
		}
		input.Price = &price
	}

	hairType, err := parseOptionalEnum(req.HairType, enums.ParseHairType, "hair_type")
	if err != nil {
		return input, err
	}
	hairTexture, err := parseOptionalEnum(req.HairTexture, enums.ParseHairTexture, "hair_texture")
	if err != nil {
		return input, err
	}

	if req.ImageMediaIDs != nil {
		mediaIDs, err := parseUUIDList(*req.ImageMediaIDs)
		if err != nil {
			return input, err
		}
		input.ImageMediaIDs = &mediaIDs
	}

	input.Name = req.Name
	input.Description = req.Description
	input.StockQuantity = req.StockQuantity
	input.HairType = hairType
	input.HairTexture = hairTexture
	input.LengthInches = req.LengthInches
	input.Color = req.Color
	input.Tags = req.Tags
	return input, nil
}

// ProductCreate handles listing creation for verified vendors.
func ProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), uid, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func ProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(chi.URLParam(r, "productId"), "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), uid, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func ProductDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(chi.URLParam(r, "productId"), "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), uid, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ProductPublish(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return productStatusHandler(func(ctx context.Context, vendorID, productID uuid.UUID) (*productsvc.ProductDTO, error) {
		return svc.Publish(ctx, vendorID, productID)
	}, logg)
}

func ProductUnpublish(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return productStatusHandler(func(ctx context.Context, vendorID, productID uuid.UUID) (*productsvc.ProductDTO, error) {
		return svc.Unpublish(ctx, vendorID, productID)
	}, logg)
}

func productStatusHandler(
	op func(ctx context.Context, vendorID, productID uuid.UUID) (*productsvc.ProductDTO, error),
	logg *logger.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(chi.URLParam(r, "productId"), "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := op(r.Context(), uid, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type adjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

func ProductAdjustStock(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(chi.URLParam(r, "productId"), "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.AdjustStock(r.Context(), uid, productID, payload.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func ProductListMine(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListMine(r.Context(), uid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// ProductGet serves the public detail page; non-active listings read as 404.
func ProductGet(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathUUID(chi.URLParam(r, "productId"), "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductList serves the public cursor-paginated catalog.
func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.ListInput{
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseProductCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			input.Filters.Category = &category
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("vendor_id")); raw != "" {
			vendorID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vendor_id"))
				return
			}
			input.Filters.VendorID = &vendorID
		}

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func parseOptionalEnum[T any](raw *string, parse func(string) (T, error), field string) (*T, error) {
	if raw == nil {
		return nil, nil
	}
	value, err := parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field)
	}
	return &value, nil
}

func parseUUIDList(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid media id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
