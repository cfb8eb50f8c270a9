package slides

var catalog = []Template{
	{
		Type:             "cover",
		Purpose:          "10-second filter — company name, one-liner, stage, contact",
		RequiredElements: []string{"company_name", "product_name", "one_liner", "funding_stage"},
		MaxBullets:       0,
		WordLimit:        30,
	},
	{
		Type:             "executive-summary",
		Purpose:          "Value prop, competitive edge, flagship results in 30 seconds",
		RequiredElements: []string{"value_proposition", "key_metric_1", "key_metric_2", "competitive_edge"},
		MetricsNeeded:    []string{"revenue", "growth_rate", "customer_count"},
		MaxBullets:       4,
		WordLimit:        100,
	},
	{
		Type:             "problem",
		Purpose:          "Systemic pain with market data — not anecdotes",
		RequiredElements: []string{"problem_statement", "market_evidence", "cost_of_problem", "who_feels_it"},
		MetricsNeeded:    []string{"market_data_citation"},
		MaxBullets:       4,
		WordLimit:        120,
	},
	{
		Type:             "why-now",
		Purpose:          "Macro tailwind making this the right moment",
		RequiredElements: []string{"timing_catalyst", "market_shift", "technology_enabler"},
		OptionalElements: []string{"regulatory_driver"},
		MaxBullets:       4,
		WordLimit:        120,
	},
	{
		Type:             "solution",
		Purpose:          "Product type, end user, vertical, quantified impact",
		RequiredElements: []string{"product_description", "target_user", "key_benefit", "quantified_impact"},
		MetricsNeeded:    []string{"roi_metric"},
		MaxBullets:       5,
		WordLimit:        150,
	},
	{
		Type:             "product",
		Purpose:          "Architecture overview, key capabilities, differentiation",
		RequiredElements: []string{"architecture_overview", "key_capabilities", "technical_moat"},
		OptionalElements: []string{"demo_description", "screenshot_placeholder"},
		MaxBullets:       5,
		WordLimit:        150,
	},
	{
		Type:             "market-sizing",
		Purpose:          "TAM/SAM/SOM with bottom-up methodology",
		RequiredElements: []string{"tam", "sam", "som", "methodology_explanation"},
		MetricsNeeded:    []string{"tam_eur", "sam_eur", "som_eur", "icp_count", "arpu"},
		MaxBullets:       4,
		WordLimit:        120,
	},
	{
		Type:             "business-model",
		Purpose:          "Pricing model, unit economics, gross margin",
		RequiredElements: []string{"pricing_model", "price_range", "unit_economics_summary"},
		MetricsNeeded:    []string{"acv", "gross_margin", "ltv", "cac", "payback_period"},
		MaxBullets:       5,
		WordLimit:        130,
	},
	{
		Type:             "traction",
		Purpose:          "Growth proof — most scrutinized slide by VCs",
		RequiredElements: []string{"revenue_metric", "growth_trajectory", "customer_evidence"},
		MetricsNeeded:    []string{"arr_or_revenue", "yoy_growth", "customer_count", "ndr", "logo_names_or_anonymized"},
		MaxBullets:       5,
		WordLimit:        130,
	},
	{
		Type:             "go-to-market",
		Purpose:          "ICP, sales motion, channels, partnerships",
		RequiredElements: []string{"icp_definition", "sales_motion", "channel_strategy"},
		OptionalElements: []string{"partnership_strategy", "expansion_playbook"},
		MetricsNeeded:    []string{"cac", "sales_cycle_days"},
		MaxBullets:       5,
		WordLimit:        130,
	},
	{
		Type:             "competitive-landscape",
		Purpose:          "2-axis positioning matrix with differentiated axes",
		RequiredElements: []string{"positioning_matrix_description", "key_differentiators", "competitive_moat"},
		OptionalElements: []string{"win_rate"},
		MaxBullets:       4,
		WordLimit:        120,
	},
	{
		Type:             "team",
		Purpose:          "Domain expertise, key hires, credibility foundation",
		RequiredElements: []string{"founders_with_credentials", "key_hires", "domain_expertise_proof"},
		OptionalElements: []string{"advisors", "board_members"},
		MetricsNeeded:    []string{"years_domain_experience"},
		MaxBullets:       5,
		WordLimit:        150,
	},
	{
		Type:             "financials",
		Purpose:          "Revenue trajectory, burn rate, runway",
		RequiredElements: []string{"revenue_trajectory", "cost_structure", "path_to_profitability"},
		MetricsNeeded:    []string{"current_mrr", "burn_rate", "runway_months", "burn_multiple"},
		MaxBullets:       4,
		WordLimit:        120,
	},
	{
		Type:             "the-ask",
		Purpose:          "Amount, use of funds, milestones to next round",
		RequiredElements: []string{"raise_amount", "use_of_funds_breakdown", "key_milestones_18_months"},
		MetricsNeeded:    []string{"raise_amount_eur", "target_arr_18_months"},
		MaxBullets:       5,
		WordLimit:        130,
	},
	{
		Type:             "ai-architecture",
		Purpose:          "Technical depth for AI-specific investors — moat and defensibility",
		RequiredElements: []string{"architecture_layers", "data_moat", "ai_approach"},
		OptionalElements: []string{"performance_benchmarks", "ip_description"},
		MaxBullets:       5,
		WordLimit:        150,
	},
}
