package sector

import (
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/discovery"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/layers"
	"github.com/danielpatrickdp/disclosure-engine/go-controller/internal/trust"
)

// #region overrides

// BuiltinOverrides maps scenario ids that must ignore their generic sector
// field to the sector config they need.
func BuiltinOverrides() map[string]string {
	return map[string]string{
		"business-school": "education",
		"ecole-commerce":  "education",
	}
}

// #endregion overrides

// #region generic

// GenericConfig is the fallback: no layers, no sector actions, generic lists.
func GenericConfig() *Config {
	return &Config{
		ID:   GenericID,
		Name: "Generic",
		BudgetRanges: []string{
			"under 10k EUR", "10-50k EUR", "50-150k EUR", "over 150k EUR",
		},
		DecisionTimelines: []string{
			"this quarter", "within 6 months", "next fiscal year",
		},
		StakeholderHierarchy: []string{
			"end user", "team lead", "department head", "executive sponsor",
		},
	}
}

// #endregion generic

// #region builtin-table

// BuiltinConfigs returns the sector table. Each call builds fresh values.
func BuiltinConfigs() []*Config {
	return []*Config{
		technology(),
		manufacturing(),
		healthcare(),
		retail(),
		finance(),
		education(),
	}
}

func responses(low, medium, high string) map[trust.Bucket]string {
	return map[trust.Bucket]string{
		trust.BucketLow:    low,
		trust.BucketMedium: medium,
		trust.BucketHigh:   high,
	}
}

// #endregion builtin-table

// #region technology

func technology() *Config {
	return &Config{
		ID:      "technology",
		Name:    "Technology",
		Aliases: []string{"tech", "technologie", "software", "saas", "it"},
		Layers: []layers.Layer{
			{ID: "technology-stack", Level: 1, Category: layers.CategoryTechnical, UnlockThreshold: 15,
				Facts: map[string]any{
					"currentStack": []string{"legacy on-prem ERP", "in-house CRM"},
					"teamSize":     "12 engineers",
				}},
			{ID: "technology-pains", Level: 2, Category: layers.CategoryBusiness, UnlockThreshold: 30,
				Facts: map[string]any{
					"painPoints": []string{"release cycles of six weeks", "no single customer view"},
				}},
			{ID: "technology-budget", Level: 3, Category: layers.CategoryFinancial, UnlockThreshold: 50,
				UnlockTriggers: []string{"checkBudget", "focuses_on_roi", "prove_roi"},
				Facts: map[string]any{
					"budgetRange":    "80-120k EUR",
					"decisionMakers": []string{"CTO", "CFO"},
				}},
			{ID: "technology-strategy", Level: 4, Category: layers.CategoryStrategic, UnlockThreshold: 70,
				Facts: map[string]any{
					"strategicProjects": []string{"cloud migration by 2027"},
					"competitorsInPlay": []string{"two integrators shortlisted"},
				}},
		},
		Actions: []discovery.Action{
			{Name: discovery.CheckBudget, Description: "Ask the CFO about the envelope", SectorSpecific: true,
				DelaySeconds: [2]float64{2, 5}, TrustImpact: 4,
				Responses: responses(
					"We don't discuss budget with vendors at this stage.",
					"There is a line for tooling this year, but it isn't final.",
					"Between us, the CFO has set aside around 100k for this.",
				)},
			{Name: "checkTechnicalFit", Description: "Run the proposal past the lead architect", SectorSpecific: true,
				DelaySeconds: [2]float64{3, 6}, TrustImpact: 6,
				Responses: responses(
					"Our architect is very busy, send a document.",
					"Our architect wants to know if you support SSO and an open API.",
					"Our architect is interested, he'd like a technical workshop next week.",
				)},
			{Name: discovery.ConsultDecisionMaker, Description: "Check with the CTO", SectorSpecific: true,
				DelaySeconds: [2]float64{3, 8}, TrustImpact: 5,
				Responses: responses(
					"The CTO decides, and he isn't available.",
					"The CTO would look at it if it fits the cloud roadmap.",
					"The CTO agreed to a 30-minute call, let's find a slot.",
				)},
		},
		BudgetRanges:         []string{"20-50k EUR", "50-150k EUR", "150-400k EUR"},
		DecisionTimelines:    []string{"next sprint planning", "quarterly roadmap review", "annual budget cycle"},
		StakeholderHierarchy: []string{"developer", "engineering manager", "lead architect", "CTO", "CFO"},
		Vocabulary: []string{
			"api", "cloud", "saas", "devops", "ci/cd", "microservices", "technical debt", "sso",
			"integration", "scalability",
		},
	}
}

// #endregion technology

// #region manufacturing

func manufacturing() *Config {
	return &Config{
		ID:      "manufacturing",
		Name:    "Manufacturing",
		Aliases: []string{"industry", "industrie", "industrial", "factory"},
		Layers: []layers.Layer{
			{ID: "manufacturing-site", Level: 1, Category: layers.CategoryBusiness, UnlockThreshold: 15,
				Facts: map[string]any{
					"sites":        "two plants",
					"shiftPattern": "3x8",
				}},
			{ID: "manufacturing-pains", Level: 2, Category: layers.CategoryTechnical, UnlockThreshold: 30,
				Facts: map[string]any{
					"painPoints": []string{"unplanned downtime on line 2", "scrap rate above 4%"},
				}},
			{ID: "manufacturing-budget", Level: 3, Category: layers.CategoryFinancial, UnlockThreshold: 50,
				Facts: map[string]any{
					"budgetRange":    "150-250k EUR capex",
					"decisionMakers": []string{"plant director", "group purchasing"},
				}},
			{ID: "manufacturing-strategy", Level: 4, Category: layers.CategoryStrategic, UnlockThreshold: 70,
				UnlockTriggers: []string{"consultDecisionMaker", "long_term_vision"},
				Facts: map[string]any{
					"strategicProjects": []string{"third plant in 2028", "ISO 50001 certification"},
				}},
		},
		Actions: []discovery.Action{
			{Name: discovery.CheckBudget, Description: "Check capex with the plant controller", SectorSpecific: true,
				DelaySeconds: [2]float64{3, 6}, TrustImpact: 5,
				Responses: responses(
					"Capex is frozen, I can't tell you anything.",
					"There might be room in next year's capex plan.",
					"The controller confirms about 200k is earmarked for the lines.",
				)},
			{Name: "checkProductionData", Description: "Pull downtime figures from maintenance", SectorSpecific: true,
				DelaySeconds: [2]float64{4, 8}, TrustImpact: 7,
				Responses: responses(
					"I won't share production data over the phone.",
					"Maintenance says line 2 stopped about ten times last month.",
					"Here are the real numbers: 38 hours of downtime last quarter.",
				)},
		},
		BudgetRanges:         []string{"50-100k EUR", "100-250k EUR", "250k-1M EUR"},
		DecisionTimelines:    []string{"next maintenance shutdown", "capex committee in Q3", "group budget in November"},
		StakeholderHierarchy: []string{"line operator", "maintenance manager", "plant director", "group purchasing", "COO"},
		Vocabulary: []string{
			"oee", "lean", "downtime", "predictive maintenance", "scrap rate", "throughput", "kaizen",
			"capex", "production line",
		},
	}
}

// #endregion manufacturing

// #region healthcare

func healthcare() *Config {
	return &Config{
		ID:      "healthcare",
		Name:    "Healthcare",
		Aliases: []string{"sante", "health", "hospital", "clinic"},
		Layers: []layers.Layer{
			{ID: "healthcare-organisation", Level: 1, Category: layers.CategoryBusiness, UnlockThreshold: 15,
				Facts: map[string]any{
					"beds":        320,
					"departments": []string{"emergency", "surgery", "radiology"},
				}},
			{ID: "healthcare-pains", Level: 2, Category: layers.CategoryBusiness, UnlockThreshold: 30,
				Facts: map[string]any{
					"painPoints": []string{"staff turnover", "patient records spread across three systems"},
				}},
			{ID: "healthcare-compliance", Level: 3, Category: layers.CategoryTechnical, UnlockThreshold: 45,
				UnlockTriggers: []string{"understand_sector", "sector_knowledge"},
				Facts: map[string]any{
					"complianceConstraints": []string{"HDS hosting", "GDPR health data"},
				}},
			{ID: "healthcare-budget", Level: 4, Category: layers.CategoryFinancial, UnlockThreshold: 60,
				Facts: map[string]any{
					"budgetRange":    "public tender, around 90k EUR",
					"decisionMakers": []string{"CIO", "medical committee", "purchasing"},
				}},
		},
		Actions: []discovery.Action{
			{Name: discovery.CheckBudget, Description: "Check the tender calendar with purchasing", SectorSpecific: true,
				DelaySeconds: [2]float64{4, 8}, TrustImpact: 3,
				Responses: responses(
					"Everything goes through public tenders, I can't discuss amounts.",
					"A tender for this kind of solution is planned, not yet published.",
					"Purchasing expects the tender in spring, around 90k.",
				)},
			{Name: "consultMedicalCommittee", Description: "Ask the medical committee's view", SectorSpecific: true,
				DelaySeconds: [2]float64{5, 10}, TrustImpact: 6,
				Responses: responses(
					"The medical committee doesn't take vendor calls.",
					"The committee wants to know what other hospitals use it.",
					"The committee would back a pilot in radiology.",
				)},
		},
		BudgetRanges:         []string{"under 40k EUR (direct purchase)", "40-200k EUR (tender)", "multi-year framework"},
		DecisionTimelines:    []string{"next tender window", "after the medical committee", "next fiscal year"},
		StakeholderHierarchy: []string{"nurse manager", "department head", "CIO", "medical committee", "hospital director"},
		Vocabulary: []string{
			"patient", "hds", "medical records", "interoperability", "hl7", "care pathway",
			"public tender", "clinical",
		},
	}
}

// #endregion healthcare

// #region retail

func retail() *Config {
	return &Config{
		ID:      "retail",
		Name:    "Retail",
		Aliases: []string{"commerce", "distribution", "e-commerce", "ecommerce"},
		Layers: []layers.Layer{
			{ID: "retail-network", Level: 1, Category: layers.CategoryBusiness, UnlockThreshold: 15,
				Facts: map[string]any{
					"stores":      45,
					"onlineShare": "18% of revenue",
					"peakSeason":  "November to January",
				}},
			{ID: "retail-pains", Level: 2, Category: layers.CategoryBusiness, UnlockThreshold: 30,
				Facts: map[string]any{
					"painPoints": []string{"stock-outs in stores", "low loyalty app adoption"},
				}},
			{ID: "retail-budget", Level: 3, Category: layers.CategoryFinancial, UnlockThreshold: 55,
				Facts: map[string]any{
					"budgetRange":    "60-90k EUR",
					"decisionMakers": []string{"head of e-commerce", "CFO"},
				}},
			{ID: "retail-strategy", Level: 4, Category: layers.CategoryStrategic, UnlockThreshold: 75,
				Facts: map[string]any{
					"strategicProjects": []string{"unified commerce platform", "click and collect everywhere"},
				}},
		},
		Actions: []discovery.Action{
			{Name: discovery.CheckBudget, Description: "Check the marketing and IT envelope", SectorSpecific: true,
				DelaySeconds: [2]float64{2, 4}, TrustImpact: 4,
				Responses: responses(
					"Budgets are set by headquarters, not me.",
					"We usually decide these things before peak season.",
					"Headquarters validated about 75k for the omnichannel project.",
				)},
			{Name: "checkStoreFeedback", Description: "Ask store managers for feedback", SectorSpecific: true,
				DelaySeconds: [2]float64{3, 6}, TrustImpact: 5,
				Responses: responses(
					"Store managers are swamped, I won't bother them.",
					"Some store managers complain about stock visibility.",
					"Three store managers want to test your solution.",
				)},
		},
		BudgetRanges:         []string{"10-30k EUR", "30-100k EUR", "100-300k EUR"},
		DecisionTimelines:    []string{"before peak season", "after the sales period", "annual plan in September"},
		StakeholderHierarchy: []string{"store manager", "regional manager", "head of e-commerce", "CFO", "CEO"},
		Vocabulary: []string{
			"omnichannel", "click and collect", "basket size", "footfall", "stock-out", "loyalty",
			"conversion rate", "merchandising",
		},
	}
}

// #endregion retail

// #region finance

func finance() *Config {
	return &Config{
		ID:      "finance",
		Name:    "Finance",
		Aliases: []string{"banking", "banque", "insurance", "assurance", "financial services"},
		Layers: []layers.Layer{
			{ID: "finance-organisation", Level: 1, Category: layers.CategoryBusiness, UnlockThreshold: 15,
				Facts: map[string]any{
					"branches":   60,
					"clientBase": "retail and SME clients",
				}},
			{ID: "finance-compliance", Level: 2, Category: layers.CategoryTechnical, UnlockThreshold: 35,
				UnlockTriggers: []string{"sector_knowledge", "address_concerns"},
				Facts: map[string]any{
					"complianceConstraints": []string{"DORA", "KYC backlog audit"},
				}},
			{ID: "finance-budget", Level: 3, Category: layers.CategoryFinancial, UnlockThreshold: 55,
				Facts: map[string]any{
					"budgetRange":    "200-300k EUR",
					"decisionMakers": []string{"COO", "risk committee"},
				}},
			{ID: "finance-strategy", Level: 4, Category: layers.CategoryStrategic, UnlockThreshold: 75,
				Facts: map[string]any{
					"strategicProjects": []string{"branch network digitalisation"},
				}},
		},
		Actions: []discovery.Action{
			{Name: discovery.CheckBudget, Description: "Check with the risk and finance teams", SectorSpecific: true,
				DelaySeconds: [2]float64{3, 7}, TrustImpact: 4,
				Responses: responses(
					"Budget is confidential, and every vendor goes through procurement.",
					"Procurement has a line for compliance tooling this year.",
					"The risk committee approved roughly 250k for the programme.",
				)},
			{Name: "checkCompliance", Description: "Ask compliance whether the vendor is eligible", SectorSpecific: true,
				DelaySeconds: [2]float64{4, 9}, TrustImpact: 6,
				Responses: responses(
					"Compliance will need your certifications in writing first.",
					"Compliance asks where the data is hosted and who audits you.",
					"Compliance is fine with your hosting, we can move to due diligence.",
				)},
		},
		BudgetRanges:         []string{"50-150k EUR", "150-500k EUR", "over 500k EUR"},
		DecisionTimelines:    []string{"after the risk committee", "next audit cycle", "annual budget in December"},
		StakeholderHierarchy: []string{"branch manager", "head of operations", "compliance officer", "COO", "risk committee"},
		Vocabulary: []string{
			"compliance", "kyc", "aml", "dora", "basel", "regulator", "risk management", "due diligence",
		},
	}
}

// #endregion finance

// #region education

func education() *Config {
	return &Config{
		ID:      "education",
		Name:    "Education",
		Aliases: []string{"enseignement", "higher education", "university"},
		Layers: []layers.Layer{
			{ID: "education-programmes", Level: 1, Category: layers.CategoryBusiness, UnlockThreshold: 15,
				Facts: map[string]any{
					"students":   2400,
					"programmes": []string{"bachelor in management", "MSc marketing", "executive MBA"},
				}},
			{ID: "education-pains", Level: 2, Category: layers.CategoryBusiness, UnlockThreshold: 30,
				Facts: map[string]any{
					"painPoints": []string{"falling application rate", "manual admissions process"},
				}},
			{ID: "education-accreditation", Level: 3, Category: layers.CategoryStrategic, UnlockThreshold: 45,
				UnlockTriggers: []string{"sector_knowledge", "understand_sector"},
				Facts: map[string]any{
					"accreditation": "EQUIS renewal due next year",
				}},
			{ID: "education-budget", Level: 4, Category: layers.CategoryFinancial, UnlockThreshold: 60,
				Facts: map[string]any{
					"budgetRange":    "40-70k EUR",
					"decisionMakers": []string{"dean", "secretary general"},
				}},
		},
		Actions: []discovery.Action{
			{Name: discovery.CheckBudget, Description: "Check with the secretary general", SectorSpecific: true,
				DelaySeconds: [2]float64{3, 6}, TrustImpact: 3,
				Responses: responses(
					"Budget questions go to the secretary general, not me.",
					"There is a digital budget, but it's shared across programmes.",
					"The secretary general could free about 50k before the next intake.",
				)},
			{Name: "consultDean", Description: "Ask the dean's office", SectorSpecific: true,
				DelaySeconds: [2]float64{4, 8}, TrustImpact: 6,
				Responses: responses(
					"The dean doesn't take external projects mid-semester.",
					"The dean cares about anything that helps the accreditation.",
					"The dean would like you to present to the executive committee.",
				)},
		},
		BudgetRanges:         []string{"under 20k EUR", "20-80k EUR", "over 80k EUR"},
		DecisionTimelines:    []string{"before the next intake", "after the accreditation visit", "next academic year"},
		StakeholderHierarchy: []string{"programme manager", "head of admissions", "secretary general", "dean"},
		Vocabulary: []string{
			"accreditation", "equis", "aacsb", "admissions", "intake", "alumni", "employability",
			"student experience",
		},
	}
}

// #endregion education
