package knowledge

// NewAutomotiveStore returns a store seeded with the built-in automotive
// corpus: model notes, market trends and incentive rules for the Indian
// market. Deployments with a real index can skip this and provide their
// own core.KnowledgeStore.
func NewAutomotiveStore() *InMemoryStore {
	s := NewInMemoryStore()
	for _, doc := range seedCorpus {
		s.Add(doc)
	}
	return s
}

var seedCorpus = []Document{
	{
		ID:    "kb_nexon_ev",
		Topic: "Tata Nexon EV",
		Text: "Market leader in the compact EV segment with roughly 70% share. Best value " +
			"for money electric car with proven reliability, an extensive service network and " +
			"a 5-star Global NCAP rating. Resale retention around 75% after 3 years, excellent " +
			"for the EV segment. Known niggles: occasional software updates, charging port " +
			"cover durability, infotainment lag.",
	},
	{
		ID:    "kb_zs_ev",
		Topic: "MG ZS EV",
		Text: "Premium compact electric SUV focused on technology: AI voice assistant, the " +
			"largest touchscreen in the segment and a 419km ARAI range, the longest claimed in " +
			"class. Resale retention near 70% after 3 years. Watch for the limited service " +
			"network and higher maintenance costs.",
	},
	{
		ID:    "kb_kona",
		Topic: "Hyundai Kona Electric",
		Text: "Premium global EV with the most refined driving experience in the segment: " +
			"premium interior materials, smooth quiet ride and comprehensive warranty coverage. " +
			"Highest priced of the compact EVs with premium parts pricing; resale retention " +
			"about 72% after 3 years supported by brand value.",
	},
	{
		ID:    "kb_harrier",
		Topic: "Tata Harrier",
		Text: "Premium diesel SUV with commanding road presence, excellent build quality and a " +
			"5-star Global NCAP rating. Better value than the Mahindra XUV700. Fuel efficiency " +
			"and rear seat space are the usual complaints; resale retention about 68% after 3 " +
			"years, good for a diesel SUV.",
	},
	{
		ID:    "kb_creta",
		Topic: "Hyundai Creta",
		Text: "Compact petrol SUV segment leader with consistent sales, a feature-rich cabin, " +
			"smooth engine options and excellent 78% resale retention after 3 years. 4-star " +
			"Global NCAP. Minor gripes: road noise at high speed and touch control sensitivity.",
	},
	{
		ID:    "kb_ev_market",
		Topic: "EV market growth",
		Text: "Electric vehicle sales in India grew 168% in 2023. Government subsidies through " +
			"the FAME II scheme make EVs 20-30% more affordable, and the compact EV segment " +
			"under ₹15 lakh is the most competitive with five or more options offering " +
			"300-400km range and fast charging as standard.",
	},
	{
		ID:    "kb_charging",
		Topic: "Charging infrastructure",
		Text: "India now has over 12,000 public charging stations with rapid expansion planned. " +
			"Home charging solutions are becoming more affordable, and most compact EVs support " +
			"DC fast charging to 80% in under an hour.",
	},
	{
		ID:    "kb_delhi_ev",
		Topic: "Delhi EV incentives",
		Text: "Delhi offers an additional ₹30,000 state subsidy for electric cars, exemption " +
			"from the odd-even rule, and has 1,800+ charging stations with 18,000 planned. " +
			"Road tax and registration fees are waived for EVs registered in Delhi.",
	},
	{
		ID:    "kb_mumbai_market",
		Topic: "Mumbai market dynamics",
		Text: "Mumbai carries premium pricing but better financing options, a strong resale " +
			"market and growing EV infrastructure. Maharashtra's EV policy adds a ₹25,000 state " +
			"incentive for electric vehicles registered in the state.",
	},
	{
		ID:    "kb_fame",
		Topic: "FAME II subsidy rules",
		Text: "The FAME II central subsidy offers up to ₹1,50,000 off electric vehicles priced " +
			"under ₹15 lakh ex-showroom, adjusted by the dealer at purchase. Section 80EEB " +
			"additionally allows a ₹1,50,000 income tax deduction on interest for loans taken " +
			"to buy an EV.",
	},
	{
		ID:    "kb_diesel_shift",
		Topic: "Diesel market shift",
		Text: "Diesel preference is declining due to tightening emission norms and city-level " +
			"restrictions on older diesel vehicles; resale values for diesel cars are softening " +
			"in metro markets while petrol demand stays stable.",
	},
	{
		ID:    "kb_loan_rates",
		Topic: "Car loan rates",
		Text: "Car loan interest rates from major lenders currently range from 8.5% to 9.5% " +
			"per annum for tenures of six to seven years, with 10-20% down payment typical. An " +
			"EMI above 40% of monthly income usually fails eligibility checks.",
	},
}
