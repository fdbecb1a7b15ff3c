package score

// ZScoreGuideline is the fixed three-band interpretation for Altman Z.
const ZScoreGuideline = "小於1.8代表危險、1.8到2.9之間代表適中、大於2.9代表安全"

// CalculateZScore computes the Altman Z-Score from the current-year TTM
// snapshot plus the externally supplied market capitalization. Market cap
// arrives in the currency's base unit and is scaled to the report's
// thousands convention before the leverage ratio.
//
//	A = working capital / total assets
//	B = retained earnings / total assets
//	C = EBITDA proxy (pretax income + interest income + depreciation +
//	    amortization) / total assets
//	D = market cap / total liabilities
//	E = operating revenue / total assets
//	Z = 1.2A + 1.4B + 3.3C + 0.6D + 1E
func (c *Calculator) CalculateZScore(marketCap float64) (*Record, error) {
	year := c.Year

	totalAssets, err := c.item(year, ItemTotalAssets)
	if err != nil {
		return nil, err
	}
	var (
		currentAssets, currentLiabs, retained     float64
		pretax, interest, depreciation, amortized float64
		totalLiabs, revenue                       float64
	)
	for _, f := range []struct {
		dst  *float64
		item string
	}{
		{&currentAssets, ItemCurrentAssetsTotal},
		{&currentLiabs, ItemCurrentLiabilitiesTotal},
		{&retained, ItemRetainedEarningsTotal},
		{&pretax, ItemPretaxIncome},
		{&interest, ItemInterestIncome},
		{&depreciation, ItemDepreciationExpense},
		{&amortized, ItemAmortizationExpense},
		{&totalLiabs, ItemTotalLiabilities},
		{&revenue, ItemOperatingRevenueTotal},
	} {
		if *f.dst, err = c.item(year, f.item); err != nil {
			return nil, err
		}
	}

	a, err := div(currentAssets-currentLiabs, totalAssets, "營運資金 / 資產總額")
	if err != nil {
		return nil, err
	}
	b, err := div(retained, totalAssets, "保留盈餘 / 資產總額")
	if err != nil {
		return nil, err
	}
	cRatio, err := div(pretax+interest+depreciation+amortized, totalAssets, "稅前息前折舊攤銷前獲利 / 資產總額")
	if err != nil {
		return nil, err
	}
	d, err := div(marketCap/1000, totalLiabs, "股票市值 / 負債總額")
	if err != nil {
		return nil, err
	}
	e, err := div(revenue, totalAssets, "營業收入 / 資產總額")
	if err != nil {
		return nil, err
	}

	z := 1.2*a + 1.4*b + 3.3*cRatio + 0.6*d + 1*e

	return &Record{
		Name: "Z-score",
		Entries: []Entry{
			{"營運資金 / 資產總額", round2(a)},
			{"保留盈餘 / 資產總額", round2(b)},
			{"稅前息前折舊攤銷前獲利 / 資產總額", round2(cRatio)},
			{"股票市值 / 資產總額", round2(d)},
			{"營業收入 / 資產總額", round2(e)},
			{"Z-score", round2(z)},
		},
		Guideline: ZScoreGuideline,
	}, nil
}
