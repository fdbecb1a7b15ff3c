package score

// MScoreGuideline is the fixed three-band interpretation for Beneish M.
const MScoreGuideline = "小於-2代表造假機率極低、-2到-1.78之間代表可能在進行財務操作、大於-1.78表示造假可能性極高"

// CalculateMScore computes the eight Beneish indices between the current
// and prior year TTM snapshots and combines them with the original 1999
// coefficients as inherited (TATA weight 4.697).
//
// Note the numerator/denominator orientation: GMI and DEPI put the prior
// year on top (deterioration pushes the index above 1), the other ratio
// indices put the current year on top.
func (c *Calculator) CalculateMScore() (*Record, error) {
	year := c.Year

	// DSRI: receivables-to-revenue change.
	receivableRatio, err := c.itemRatio(year, ItemAccountsReceivableNet, ItemOperatingRevenueTotal, "當年度應收帳款佔營業收入的比例")
	if err != nil {
		return nil, err
	}
	receivableRatioPrior, err := c.itemRatio(year-1, ItemAccountsReceivableNet, ItemOperatingRevenueTotal, "上一年度應收帳款佔營業收入的比例")
	if err != nil {
		return nil, err
	}
	dsri, err := div(receivableRatio, receivableRatioPrior, "DSRI")
	if err != nil {
		return nil, err
	}

	// GMI: gross-margin change, prior over current.
	grossMargin, err := c.itemRatio(year, ItemGrossProfit, ItemOperatingRevenueTotal, "當年度毛利率")
	if err != nil {
		return nil, err
	}
	grossMarginPrior, err := c.itemRatio(year-1, ItemGrossProfit, ItemOperatingRevenueTotal, "上一年度毛利率")
	if err != nil {
		return nil, err
	}
	gmi, err := div(grossMarginPrior, grossMargin, "GMI")
	if err != nil {
		return nil, err
	}

	// AQI: non-current-assets share of total assets change.
	assetQuality, err := c.itemRatio(year, ItemNoncurrentAssetsTotal, ItemTotalAssets, "當年度非流動資產佔總資產占比")
	if err != nil {
		return nil, err
	}
	assetQualityPrior, err := c.itemRatio(year-1, ItemNoncurrentAssetsTotal, ItemTotalAssets, "上一年度非流動資產佔總資產占比")
	if err != nil {
		return nil, err
	}
	aqi, err := div(assetQuality, assetQualityPrior, "AQI")
	if err != nil {
		return nil, err
	}

	// SGI: revenue growth.
	revenue, err := c.item(year, ItemOperatingRevenueTotal)
	if err != nil {
		return nil, err
	}
	revenuePrior, err := c.item(year-1, ItemOperatingRevenueTotal)
	if err != nil {
		return nil, err
	}
	sgi, err := div(revenue, revenuePrior, "SGI")
	if err != nil {
		return nil, err
	}

	// DEPI: depreciation-rate change, prior over current.
	depreciationRate, err := c.itemRatio(year, ItemDepreciationExpense, ItemPPE, "當年度折舊率")
	if err != nil {
		return nil, err
	}
	depreciationRatePrior, err := c.itemRatio(year-1, ItemDepreciationExpense, ItemPPE, "上一年度折舊率")
	if err != nil {
		return nil, err
	}
	depi, err := div(depreciationRatePrior, depreciationRate, "DEPI")
	if err != nil {
		return nil, err
	}

	// SGAI: selling+admin expense to revenue change.
	sgaRatio, err := c.sgaRatio(year, "當年度銷管費用占營業收入的比例")
	if err != nil {
		return nil, err
	}
	sgaRatioPrior, err := c.sgaRatio(year-1, "上一年度銷管費用占營業收入的比例")
	if err != nil {
		return nil, err
	}
	sgai, err := div(sgaRatio, sgaRatioPrior, "SGAI")
	if err != nil {
		return nil, err
	}

	// LVGI: leverage change.
	leverage, err := c.itemRatio(year, ItemTotalLiabilities, ItemTotalAssets, "當年度負債比率")
	if err != nil {
		return nil, err
	}
	leveragePrior, err := c.itemRatio(year-1, ItemTotalLiabilities, ItemTotalAssets, "上一年度負債比率")
	if err != nil {
		return nil, err
	}
	lvgi, err := div(leverage, leveragePrior, "LVGI")
	if err != nil {
		return nil, err
	}

	// TATA: accruals over total assets.
	netIncome, err := c.item(year, ItemNetIncome)
	if err != nil {
		return nil, err
	}
	cashFlow, err := c.item(year, ItemOperatingCashFlow)
	if err != nil {
		return nil, err
	}
	totalAssets, err := c.item(year, ItemTotalAssets)
	if err != nil {
		return nil, err
	}
	tata, err := div(netIncome-cashFlow, totalAssets, "TATA")
	if err != nil {
		return nil, err
	}

	m := -4.840 +
		0.920*dsri +
		0.528*gmi +
		0.404*aqi +
		0.892*sgi +
		0.115*depi -
		0.172*sgai -
		0.327*lvgi +
		4.697*tata

	return &Record{
		Name: "M-score",
		Entries: []Entry{
			{"當年度應收帳款佔營業收入的比例 / 上一年度應收帳款佔營業收入的比例", round2(dsri)},
			{"上一年度毛利率 / 當年度毛利率", round2(gmi)},
			{"當年度非流動資產佔總資產占比 / 上一年度非流動資產佔總資產占比", round2(aqi)},
			{"當年度營業收入 / 上一年度營業收入", round2(sgi)},
			{"上一年度折舊費用 / 當年度折舊費用", round2(depi)},
			{"當年度銷管費用占營業收入的比例 / 上一年度銷管費用占營業收入的比例", round2(sgai)},
			{"當年度總負債佔總資產的比例 / 上一年度總負債佔總資產的比例", round2(lvgi)},
			{"稅後淨利 - 營業活動現金流量 / 總資產", round2(tata)},
			{"M-score", round2(m)},
		},
		Guideline: MScoreGuideline,
	}, nil
}

// itemRatio divides two line items of the same year.
func (c *Calculator) itemRatio(year int, numeratorItem, denominatorItem, metric string) (float64, error) {
	numerator, err := c.item(year, numeratorItem)
	if err != nil {
		return 0, err
	}
	denominator, err := c.item(year, denominatorItem)
	if err != nil {
		return 0, err
	}
	return div(numerator, denominator, metric)
}

func (c *Calculator) sgaRatio(year int, metric string) (float64, error) {
	selling, err := c.item(year, ItemSellingExpense)
	if err != nil {
		return 0, err
	}
	admin, err := c.item(year, ItemAdminExpense)
	if err != nil {
		return 0, err
	}
	revenue, err := c.item(year, ItemOperatingRevenueTotal)
	if err != nil {
		return 0, err
	}
	return div(selling+admin, revenue, metric)
}
