package score

// FScoreGuideline is the fixed interpretation for Piotroski F.
const FScoreGuideline = "大於等於8代表非常值得投資"

// CalculateFScore accumulates the nine Piotroski conditions over the
// current year and the prior two years of TTM snapshots. The no-new-shares
// signal comes from the share-count collaborator, not the ledger.
//
// The gross-margin proxy deliberately reproduces the inherited formula
// `revenue - cost/revenue`, which is NOT the textbook (revenue-cost)/revenue
// margin. It is preserved as-is for faithful replication; both years use
// the same proxy so the year-over-year comparison stays internally
// consistent.
func (c *Calculator) CalculateFScore(isNoNewShares bool) (*Record, error) {
	year := c.Year

	netIncome, err := c.item(year, ItemNetIncome)
	if err != nil {
		return nil, err
	}
	cashFlow, err := c.item(year, ItemOperatingCashFlow)
	if err != nil {
		return nil, err
	}
	assets, err := c.item(year, ItemTotalAssets)
	if err != nil {
		return nil, err
	}
	assetsPrior, err := c.item(year-1, ItemTotalAssets)
	if err != nil {
		return nil, err
	}
	assetsPrior2, err := c.item(year-2, ItemTotalAssets)
	if err != nil {
		return nil, err
	}

	score := 0

	// 1. 獲利性: 當年度ROA > 0
	roa, err := div(netIncome, (assets+assetsPrior)/2, "當年度ROA")
	if err != nil {
		return nil, err
	}
	if roa > 0 {
		score++
	}

	// 2. 當年度營業現金流 > 0
	if cashFlow > 0 {
		score++
	}

	// 3. 當年度營業現金流 > 淨利
	if cashFlow > netIncome {
		score++
	}

	// 4. 安全性: 長期負債下降
	longTermLiabs, err := c.item(year, ItemNoncurrentLiabsTotal)
	if err != nil {
		return nil, err
	}
	longTermLiabsPrior, err := c.item(year-1, ItemNoncurrentLiabsTotal)
	if err != nil {
		return nil, err
	}
	if longTermLiabs < longTermLiabsPrior {
		score++
	}

	// 5. 流動比率上升
	currentRatio, err := c.currentRatio(year, "當年度流動比率")
	if err != nil {
		return nil, err
	}
	currentRatioPrior, err := c.currentRatio(year-1, "上一年度流動比率")
	if err != nil {
		return nil, err
	}
	if currentRatio > currentRatioPrior {
		score++
	}

	// 6. 去年無發行新股
	if isNoNewShares {
		score++
	}

	// 7. 成長性: ROA 上升
	netIncomePrior, err := c.item(year-1, ItemNetIncome)
	if err != nil {
		return nil, err
	}
	roaPrior, err := div(netIncomePrior, (assetsPrior+assetsPrior2)/2, "上一年度ROA")
	if err != nil {
		return nil, err
	}
	if roa > roaPrior {
		score++
	}

	// 8. 毛利率上升 (inherited proxy, see doc comment)
	grossMargin, err := c.grossMarginProxy(year, "當年度毛利率")
	if err != nil {
		return nil, err
	}
	grossMarginPrior, err := c.grossMarginProxy(year-1, "上一年度毛利率")
	if err != nil {
		return nil, err
	}
	if grossMargin > grossMarginPrior {
		score++
	}

	// 9. 資產周轉率上升
	revenue, err := c.item(year, ItemOperatingRevenueTotal)
	if err != nil {
		return nil, err
	}
	revenuePrior, err := c.item(year-1, ItemOperatingRevenueTotal)
	if err != nil {
		return nil, err
	}
	turnover, err := div(revenue, (assets+assetsPrior)/2, "當年度資產周轉率")
	if err != nil {
		return nil, err
	}
	turnoverPrior, err := div(revenuePrior, (assetsPrior+assetsPrior2)/2, "上一年度資產周轉率")
	if err != nil {
		return nil, err
	}
	if turnover > turnoverPrior {
		score++
	}

	noNewShares := "否"
	if isNoNewShares {
		noNewShares = "是"
	}

	return &Record{
		Name: "F-score",
		Entries: []Entry{
			{"當年度稅後淨利 / 當年度平均總資產", round2(roa)},
			{"當年度營業活動之淨現金流入（流出）", round2(cashFlow)},
			{"當年度本期淨利（淨損）", round2(netIncome)},
			{"當年度非流動負債合計", round2(longTermLiabs)},
			{"上一年度非流動負債合計", round2(longTermLiabsPrior)},
			{"當年度流動資產 / 當年度流動負債", round2(currentRatio)},
			{"上一年度流動資產 / 上一年度流動負債", round2(currentRatioPrior)},
			{"去年無發行新股", noNewShares},
			{"上一年度稅後淨利 / 上一年度平均總資產", round2(roaPrior)},
			{"(當年度營業收入 - 當年度營業成本) / 當年度營業收入", round2(grossMargin)},
			{"(上一年度營業收入 - 上一年度營業成本) / 上一年度營業收入", round2(grossMarginPrior)},
			{"當年度營業收入 / 當年度平均總資產", round2(turnover)},
			{"上一年度營業收入 / 上一年度平均總資產", round2(turnoverPrior)},
			{"F-score", score},
		},
		Guideline: FScoreGuideline,
	}, nil
}

func (c *Calculator) currentRatio(year int, metric string) (float64, error) {
	currentAssets, err := c.item(year, ItemCurrentAssetsTotal)
	if err != nil {
		return 0, err
	}
	currentLiabs, err := c.item(year, ItemCurrentLiabilitiesTotal)
	if err != nil {
		return 0, err
	}
	return div(currentAssets, currentLiabs, metric)
}

// grossMarginProxy computes revenue - cost/revenue (inherited formula).
func (c *Calculator) grossMarginProxy(year int, metric string) (float64, error) {
	revenue, err := c.item(year, ItemOperatingRevenueTotal)
	if err != nil {
		return 0, err
	}
	cost, err := c.item(year, ItemOperatingCostTotal)
	if err != nil {
		return 0, err
	}
	costToRevenue, err := div(cost, revenue, metric)
	if err != nil {
		return 0, err
	}
	return revenue - costToRevenue, nil
}
