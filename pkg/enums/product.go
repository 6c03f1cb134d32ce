package enums

import "fmt"

// ProductCategory classifies a catalog listing.
type ProductCategory string

const (
	CategoryBraidingHair ProductCategory = "braiding_hair"
	CategoryWeavingHair  ProductCategory = "weaving_hair"
	CategoryClosures     ProductCategory = "closures"
	CategoryFrontals     ProductCategory = "frontals"
	CategoryWigs         ProductCategory = "wigs"
	CategoryHairCare     ProductCategory = "hair_care"
	CategoryTools        ProductCategory = "tools"
	CategoryAccessories  ProductCategory = "accessories"
	CategoryOther        ProductCategory = "other"
)

var validProductCategories = []ProductCategory{
	CategoryBraidingHair,
	CategoryWeavingHair,
	CategoryClosures,
	CategoryFrontals,
	CategoryWigs,
	CategoryHairCare,
	CategoryTools,
	CategoryAccessories,
	CategoryOther,
}

func (c ProductCategory) String() string {
	return string(c)
}

func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductStatus controls listing visibility. Only active products resolve
// for cart writes.
type ProductStatus string

const (
	ProductDraft        ProductStatus = "draft"
	ProductActive       ProductStatus = "active"
	ProductInactive     ProductStatus = "inactive"
	ProductOutOfStock   ProductStatus = "out_of_stock"
	ProductDiscontinued ProductStatus = "discontinued"
)

var validProductStatuses = []ProductStatus{
	ProductDraft,
	ProductActive,
	ProductInactive,
	ProductOutOfStock,
	ProductDiscontinued,
}

func (s ProductStatus) String() string {
	return string(s)
}

func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}

// HairType describes the fiber of a hair product.
type HairType string

const (
	HairSynthetic HairType = "synthetic"
	HairHuman     HairType = "human_hair"
	HairMixed     HairType = "mixed"
	HairOtherType HairType = "other"
)

var validHairTypes = []HairType{HairSynthetic, HairHuman, HairMixed, HairOtherType}

func (t HairType) String() string {
	return string(t)
}

func (t HairType) IsValid() bool {
	for _, candidate := range validHairTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseHairType converts raw input into a HairType.
func ParseHairType(value string) (HairType, error) {
	for _, candidate := range validHairTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid hair type %q", value)
}

// HairTexture describes the curl pattern of a hair product.
type HairTexture string

const (
	TextureStraight  HairTexture = "straight"
	TextureWavy      HairTexture = "wavy"
	TextureCurly     HairTexture = "curly"
	TextureKinky     HairTexture = "kinky"
	TextureBodyWave  HairTexture = "body_wave"
	TextureLooseWave HairTexture = "loose_wave"
	TextureDeepWave  HairTexture = "deep_wave"
	TextureOther     HairTexture = "other"
)

var validHairTextures = []HairTexture{
	TextureStraight,
	TextureWavy,
	TextureCurly,
	TextureKinky,
	TextureBodyWave,
	TextureLooseWave,
	TextureDeepWave,
	TextureOther,
}

func (t HairTexture) String() string {
	return string(t)
}

func (t HairTexture) IsValid() bool {
	for _, candidate := range validHairTextures {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseHairTexture converts raw input into a HairTexture.
func ParseHairTexture(value string) (HairTexture, error) {
	for _, candidate := range validHairTextures {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid hair texture %q", value)
}
