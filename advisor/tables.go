package advisor

// Static agronomy and finance lookup tables. These stand in for live
// databases and are read-only after process start.

// CropOption describes one recommendable crop.
type CropOption struct {
	Name      string   `json:"name"`
	Varieties []string `json:"varieties"`
	Duration  int      `json:"duration"` // days to harvest
	WaterNeed string   `json:"water_need"`
}

var cropDatabase = map[string]map[string][]CropOption{
	"Kharif": {
		"Alluvial": {
			{Name: "Rice", Varieties: []string{"IR64", "Swarna", "Pusa Basmati"}, Duration: 120, WaterNeed: "High"},
			{Name: "Maize", Varieties: []string{"Hybrid Maize", "Sweet Corn"}, Duration: 90, WaterNeed: "Medium"},
			{Name: "Cotton", Varieties: []string{"BT Cotton", "Desi Cotton"}, Duration: 150, WaterNeed: "Medium"},
		},
		"Black": {
			{Name: "Soybean", Varieties: []string{"JS-335", "JS-9305"}, Duration: 100, WaterNeed: "Medium"},
			{Name: "Groundnut", Varieties: []string{"TMV-2", "JL-24"}, Duration: 110, WaterNeed: "Low"},
		},
	},
	"Rabi": {
		"Alluvial": {
			{Name: "Wheat", Varieties: []string{"HD-2967", "PBW-343"}, Duration: 140, WaterNeed: "Medium"},
			{Name: "Mustard", Varieties: []string{"Pusa Bold", "RH-30"}, Duration: 120, WaterNeed: "Low"},
		},
		"Black": {
			{Name: "Chickpea", Varieties: []string{"JG-11", "Pusa-372"}, Duration: 130, WaterNeed: "Low"},
			{Name: "Lentil", Varieties: []string{"PL-406", "PL-639"}, Duration: 110, WaterNeed: "Low"},
		},
	},
}

// MarketPrice is a per-quintal price snapshot.
type MarketPrice struct {
	CurrentPrice int    `json:"current_price"`
	Unit         string `json:"unit"`
	Trend        string `json:"trend"`
}

var priceTable = map[string]MarketPrice{
	"Rice":      {CurrentPrice: 1800, Unit: "per quintal", Trend: "Stable"},
	"Wheat":     {CurrentPrice: 2100, Unit: "per quintal", Trend: "Rising"},
	"Maize":     {CurrentPrice: 1500, Unit: "per quintal", Trend: "Stable"},
	"Cotton":    {CurrentPrice: 5500, Unit: "per quintal", Trend: "Falling"},
	"Soybean":   {CurrentPrice: 3200, Unit: "per quintal", Trend: "Rising"},
	"Groundnut": {CurrentPrice: 4800, Unit: "per quintal", Trend: "Stable"},
	"Mustard":   {CurrentPrice: 4200, Unit: "per quintal", Trend: "Rising"},
	"Chickpea":  {CurrentPrice: 3800, Unit: "per quintal", Trend: "Stable"},
	"Lentil":    {CurrentPrice: 5200, Unit: "per quintal", Trend: "Rising"},
}

// CropCalendar lists seasonal activity windows.
type CropCalendar struct {
	PlantingStart string   `json:"planting_start"`
	PlantingEnd   string   `json:"planting_end"`
	HarvestStart  string   `json:"harvest_start"`
	HarvestEnd    string   `json:"harvest_end"`
	KeyActivities []string `json:"key_activities"`
}

var calendarTable = map[string]CropCalendar{
	"Kharif": {
		PlantingStart: "June",
		PlantingEnd:   "August",
		HarvestStart:  "September",
		HarvestEnd:    "November",
		KeyActivities: []string{"Land preparation", "Seed treatment", "Planting", "Weeding", "Pest control"},
	},
	"Rabi": {
		PlantingStart: "October",
		PlantingEnd:   "December",
		HarvestStart:  "March",
		HarvestEnd:    "May",
		KeyActivities: []string{"Land preparation", "Seed treatment", "Planting", "Irrigation", "Fertilization"},
	},
}

var pestTable = map[string][]string{
	"Rice":   {"Rice stem borer", "Rice leaf folder", "Brown plant hopper"},
	"Wheat":  {"Aphids", "Termites", "Rust diseases"},
	"Cotton": {"Bollworm", "Aphids", "Whitefly"},
	"Maize":  {"Fall armyworm", "Stem borer", "Ear rot"},
}

// LoanOption describes an available agricultural credit product.
type LoanOption struct {
	Name         string   `json:"name"`
	Institution  string   `json:"institution"`
	InterestRate string   `json:"interest_rate"`
	MaxAmount    string   `json:"max_amount"`
	Tenure       string   `json:"tenure"`
	Eligibility  string   `json:"eligibility"`
	Features     []string `json:"features"`
}

var loanCatalog = []LoanOption{
	{
		Name:         "Kisan Credit Card (KCC)",
		Institution:  "All Banks",
		InterestRate: "7.0%",
		MaxAmount:    "₹3,00,000",
		Tenure:       "5 years",
		Eligibility:  "All farmers",
		Features:     []string{"No collateral for loans up to ₹1.6 lakh", "Flexible repayment", "Crop insurance included"},
	},
	{
		Name:         "PM-KISAN",
		Institution:  "Government of India",
		InterestRate: "0%",
		MaxAmount:    "₹6,000/year",
		Tenure:       "Annual",
		Eligibility:  "Small and marginal farmers",
		Features:     []string{"Direct benefit transfer", "No repayment required", "Three installments per year"},
	},
	{
		Name:         "Agricultural Term Loan",
		Institution:  "NABARD",
		InterestRate: "8.5%",
		MaxAmount:    "₹10,00,000",
		Tenure:       "3-7 years",
		Eligibility:  "Farmers with land documents",
		Features:     []string{"For farm mechanization", "Infrastructure development", "Collateral required"},
	},
	{
		Name:         "Microfinance Loan",
		Institution:  "MFIs",
		InterestRate: "18-24%",
		MaxAmount:    "₹50,000",
		Tenure:       "1-2 years",
		Eligibility:  "Small farmers, women farmers",
		Features:     []string{"Group lending", "Weekly/monthly repayment", "No collateral"},
	},
}

// Scheme describes a government support scheme.
type Scheme struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Coverage    string   `json:"coverage"`
	Premium     string   `json:"premium"`
	Benefits    []string `json:"benefits"`
}

var schemeCatalog = []Scheme{
	{
		Name:        "PM Fasal Bima Yojana",
		Description: "Crop insurance scheme covering yield and weather risks",
		Coverage:    "All food crops, oilseeds, and commercial crops",
		Premium:     "2% for Kharif, 1.5% for Rabi, 5% for commercial crops",
		Benefits:    []string{"Yield loss coverage", "Weather risk coverage", "Post-harvest losses"},
	},
	{
		Name:        "PM-KISAN",
		Description: "Direct income support of ₹6,000 per year to farmers",
		Coverage:    "Small and marginal farmers",
		Premium:     "Free",
		Benefits:    []string{"Direct bank transfer", "No repayment", "Three installments"},
	},
	{
		Name:        "Kisan Samman Nidhi",
		Description: "Pension scheme for small and marginal farmers",
		Coverage:    "Farmers aged 60-80 years",
		Premium:     "₹55-200 per month",
		Benefits:    []string{"Monthly pension", "Life insurance", "Accident coverage"},
	},
	{
		Name:        "Soil Health Card Scheme",
		Description: "Free soil testing and recommendations",
		Coverage:    "All farmers",
		Premium:     "Free",
		Benefits:    []string{"Soil testing", "Fertilizer recommendations", "Crop-specific advice"},
	},
}

var stateSchemes = map[string][]Scheme{
	"Maharashtra": {
		{
			Name:        "Maharashtra Krishi Sanjivani Yojana",
			Description: "Weather-based crop insurance",
			Coverage:    "All crops in Maharashtra",
			Premium:     "Subsidized rates",
			Benefits:    []string{"Weather risk coverage", "Quick claim settlement"},
		},
	},
	"Punjab": {
		{
			Name:        "Punjab Kisan Vikas Yojana",
			Description: "Support for crop diversification",
			Coverage:    "Farmers switching from paddy",
			Premium:     "Free",
			Benefits:    []string{"Financial assistance", "Technical support", "Market linkage"},
		},
	},
}

// MarketTrend is a crop-level market analysis snapshot.
type MarketTrend struct {
	CurrentPrice int      `json:"current_price"`
	Trend        string   `json:"trend"`
	Forecast     string   `json:"forecast"`
	Factors      []string `json:"factors"`
}

var trendTable = map[string]MarketTrend{
	"Rice": {
		CurrentPrice: 1800,
		Trend:        "Stable",
		Forecast:     "Expected to remain stable",
		Factors:      []string{"Good monsoon", "Government procurement", "Export demand"},
	},
	"Wheat": {
		CurrentPrice: 2100,
		Trend:        "Rising",
		Forecast:     "Expected to increase by 5-10%",
		Factors:      []string{"Reduced production", "Increased demand", "Export opportunities"},
	},
	"Cotton": {
		CurrentPrice: 5500,
		Trend:        "Falling",
		Forecast:     "Expected to stabilize",
		Factors:      []string{"Global price pressure", "Textile industry slowdown"},
	},
}

// MajorCrops lists the crops the service knows about.
func MajorCrops() []string {
	return []string{
		"Rice", "Wheat", "Maize", "Cotton", "Sugarcane", "Pulses",
		"Oilseeds", "Vegetables", "Fruits", "Spices",
	}
}

// SoilTypes lists the supported soil classifications.
func SoilTypes() []string {
	return []string{"Alluvial", "Black", "Red", "Laterite", "Mountain", "Desert", "Saline"}
}

// Seasons lists the cropping seasons.
func Seasons() []string {
	return []string{"Kharif", "Rabi", "Zaid"}
}
