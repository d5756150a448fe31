package ruptura

import (
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"github.com/PedroASilva38/RUPTURAS-QRZ/src/pkg/config"
)

// CategoryBebidas has region-split buyers in RN.
const CategoryBebidas = "Bebidas"

/*
ResolveBuyer maps a store number and category to the responsible buyer.

PB stores use the PB table directly. RN stores use the RN table, except for
Bebidas, which is split between the RN1 and RN2 sub-regions. An empty return
means no buyer covers the category for that region; callers skip the
category for buyer-side reporting.
*/
func ResolveBuyer(cfg *config.Config, storeNumber int, category string) string {
	if containsInt(cfg.StoresPB, storeNumber) {
		return cfg.BuyersPB[category]
	}

	inRN1 := containsInt(cfg.StoresRN1, storeNumber)
	inRN2 := containsInt(cfg.StoresRN2, storeNumber)
	if !inRN1 && !inRN2 {
		return ""
	}

	if category == CategoryBebidas {
		if inRN1 {
			return cfg.BuyersRNBebidas["RN1"]
		}
		return cfg.BuyersRNBebidas["RN2"]
	}

	return cfg.BuyersRN[category]
}

/*
ResolveCategoryBuyer resolves the buyer for a whole category group from the
first row that yields a store number. Rows without a leading store number
are logged and passed over; if none remain, the category is skipped.
*/
func ResolveCategoryBuyer(cfg *config.Config, category string, rows []Row) string {
	for _, row := range rows {
		storeNumber, ok := StoreNumber(row.Store)
		if !ok {
			tl.Log(
				tl.Warning, palette.PurpleBright, "Store '%s' has no leading number, row '%d' excluded from buyer routing",
				row.Store, row.Ref,
			)
			continue
		}
		return ResolveBuyer(cfg, storeNumber, category)
	}
	return ""
}

func containsInt(values []int, wanted int) bool {
	for _, value := range values {
		if value == wanted {
			return true
		}
	}
	return false
}
