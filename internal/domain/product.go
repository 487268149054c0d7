package domain

// ProductKind selects which of the two parallel product collections an
// operation targets on the remote store.
type ProductKind string

const (
	KindData   ProductKind = "data"
	KindCustom ProductKind = "custom"
)

func ValidProductKind(s string) (ProductKind, bool) {
	switch ProductKind(s) {
	case KindData, KindCustom:
		return ProductKind(s), true
	}
	return "", false
}

// FallbackImageURL is substituted when a product is created without an image.
const FallbackImageURL = "https://www.dictionary.com/e/wp-content/uploads/2020/01/Zip_Zero_Zilch_1000x700_jpg_2ZuoCxRf.jpg"

// CategoryOptions is the allowed category set for data products. Custom
// products always carry the literal "custom".
var CategoryOptions = []string{"ALL", "tech"}

// Product mirrors the remote store record. Field names follow the store's
// wire contract: "desc" and "url", not "description"/"imageUrl".
type Product struct {
	ID          string  `json:"_id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"desc"`
	Price       float64 `json:"price"`
	Discount    string  `json:"discount,omitempty"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"url"`
}
