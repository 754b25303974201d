package constants

// PropertyTypeLabels maps the short filter tokens used by the search
// surfaces to the localized category labels carried by the listings. The
// home-type predicate matches a listing when its type contains either the
// mapped label or the raw token itself (case-insensitively).
var PropertyTypeLabels = map[string]string{
	"house":     "Nhà riêng",
	"apartment": "Căn hộ",
	"villa":     "Biệt thự",
	"land":      "Đất nền",
	"office":    "Văn phòng",
	"retail":    "Mặt bằng kinh doanh",
}

// TokenAny is the wildcard token: as a bedrooms/bathrooms value it lifts
// the constraint, inside a home-type set it matches every listing.
const TokenAny = "any"

// MaxLocalityOptions caps the number of coarse localities offered by the
// filter-options endpoint, mirroring the search page's suggestion list.
const MaxLocalityOptions = 5
