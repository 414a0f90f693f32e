package model

// QuestionType enumerates the supported answer types
type QuestionType string

const (
	QuestionTypeBoolean QuestionType = "boolean"
	QuestionTypeNumber  QuestionType = "number"
	QuestionTypeSingle  QuestionType = "single"
)

// Question sections
const (
	SectionTransportation = "transportation"
	SectionHomeEnergy     = "home_energy"
	SectionDiet           = "diet"
	SectionConsumption    = "consumption_habits"
	SectionWaste          = "waste"
)

// QuestionnaireVersionV1 is the only catalog version currently served
const QuestionnaireVersionV1 = "v1"

// Question represents one entry in the questionnaire catalog
type Question struct {
	ID      string       `json:"id"`
	Section string       `json:"section"`
	Prompt  string       `json:"prompt"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options,omitempty"`
	Units   string       `json:"units,omitempty"`
}

// Questionnaire is a versioned, ordered catalog of questions
type Questionnaire struct {
	Version   string     `json:"version"`
	Questions []Question `json:"questions"`
}

// QuestionByID returns an id-to-definition lookup for the catalog
func (q *Questionnaire) QuestionByID() map[string]Question {
	byID := make(map[string]Question, len(q.Questions))
	for _, question := range q.Questions {
		byID[question.ID] = question
	}
	return byID
}

// QuestionnaireV1 is the static v1 catalog. Prompts and option labels are
// load-bearing: the footprint engine and default-answer table key off the
// exact option strings.
var QuestionnaireV1 = Questionnaire{
	Version: QuestionnaireVersionV1,
	Questions: []Question{
		{ID: "q_transport_car_own", Section: SectionTransportation, Prompt: "Do you own or regularly use a car? (yes/no)", Type: QuestionTypeBoolean},
		{ID: "q_transport_km_per_week", Section: SectionTransportation, Prompt: "How many miles/kilometers do you drive per week?", Type: QuestionTypeNumber, Units: "miles_or_km_per_week"},
		{ID: "q_transport_fuel_type", Section: SectionTransportation, Prompt: "What type of fuel does your car use?", Type: QuestionTypeSingle, Options: []string{"Gasoline/Petrol", "Diesel", "Hybrid (gasoline)", "Electric", "Plug-in Hybrid"}},
		{ID: "q_transport_vehicle_age", Section: SectionTransportation, Prompt: "How old is your primary vehicle?", Type: QuestionTypeSingle, Options: []string{"Less than 3 years old (very efficient)", "3-7 years old (moderately efficient)", "8-12 years old (average efficiency)", "More than 12 years old (less efficient)"}},
		{ID: "q_transport_carpool_frequency", Section: SectionTransportation, Prompt: "How often do you carpool or share rides?", Type: QuestionTypeSingle, Options: []string{"Regularly (most trips shared)", "Sometimes (occasional carpooling)", "Rarely", "Never"}},
		{ID: "q_transport_walk_cycle_days_per_week", Section: SectionTransportation, Prompt: "How many days per week do you walk or cycle for transportation (not just exercise)?", Type: QuestionTypeNumber, Units: "days_per_week"},
		{ID: "q_transport_public_transport_days_per_week", Section: SectionTransportation, Prompt: "How many days per week do you use public transport (bus, train, subway)?", Type: QuestionTypeNumber, Units: "days_per_week"},
		{ID: "q_transport_public_transport_trips_per_day", Section: SectionTransportation, Prompt: "On those days, how many trips do you typically take?", Type: QuestionTypeNumber, Units: "trips_per_day"},
		{ID: "q_transport_public_transport_type", Section: SectionTransportation, Prompt: "What type of public transport do you primarily use?", Type: QuestionTypeSingle, Options: []string{"Bus", "Train/Subway", "Light rail/Tram", "Ferry"}},
		{ID: "q_transport_rideshare_trips_per_month", Section: SectionTransportation, Prompt: "How many ride-share trips do you take per month? (Uber, Lyft, etc.)", Type: QuestionTypeNumber, Units: "trips_per_month"},
		{ID: "q_transport_flights_per_year", Section: SectionTransportation, Prompt: "How many round-trip flights do you take per year?", Type: QuestionTypeNumber, Units: "round_trips_per_year"},
		{ID: "q_transport_flight_duration_hours", Section: SectionTransportation, Prompt: "What's the average flight duration in hours? (e.g., 2 for short, 6 for medium, 12 for long)", Type: QuestionTypeNumber, Units: "hours"},
		{ID: "q_transport_flight_class", Section: SectionTransportation, Prompt: "What class do you typically fly?", Type: QuestionTypeSingle, Options: []string{"Economy", "Premium Economy", "Business", "First Class"}},

		{ID: "q_home_size", Section: SectionHomeEnergy, Prompt: "What size is your home?", Type: QuestionTypeSingle, Options: []string{"Small (studio/1-bedroom apartment, under 50 m² / 500 sq ft)", "Medium (2-3 bedroom, 50-100 m² / 500-1000 sq ft)", "Large (4+ bedroom, 100-200 m² / 1000-2000 sq ft)", "Very large (200+ m² / 2000+ sq ft)"}},
		{ID: "q_home_electricity_usage", Section: SectionHomeEnergy, Prompt: "How would you describe your household's electricity usage?", Type: QuestionTypeSingle, Options: []string{"Very low (minimal appliances, LED lights, unplug when not in use)", "Low (energy-efficient appliances, mindful usage)", "Average (typical household usage)", "High (many devices, always on, older appliances)"}},
		{ID: "q_home_appliance_efficiency", Section: SectionHomeEnergy, Prompt: "How energy-efficient are your major appliances (refrigerator, washer, dryer, etc.)?", Type: QuestionTypeSingle, Options: []string{"Mostly Energy Star / highly efficient (newer models)", "Mix of efficient and older appliances", "Mostly older, less efficient appliances"}},
		{ID: "q_home_renewable_energy", Section: SectionHomeEnergy, Prompt: "Does your home use renewable energy?", Type: QuestionTypeSingle, Options: []string{"Yes, 100% renewable (solar panels, green energy plan)", "Partially renewable (some solar/wind)", "No, standard grid energy"}},
		{ID: "q_home_heating_source", Section: SectionHomeEnergy, Prompt: "What is your primary heating source?", Type: QuestionTypeSingle, Options: []string{"Natural gas", "Electric", "Oil", "Heat pump", "Wood/biomass", "No heating needed"}},
		{ID: "q_home_heating_cooling_usage", Section: SectionHomeEnergy, Prompt: "How much do you use heating/cooling?", Type: QuestionTypeSingle, Options: []string{"Minimal (only when necessary, efficient thermostat)", "Moderate (comfortable temperatures, some conservation)", "High (always comfortable, less conservation)"}},
		{ID: "q_home_insulation", Section: SectionHomeEnergy, Prompt: "How well is your home insulated?", Type: QuestionTypeSingle, Options: []string{"Very well insulated (newer construction, double-pane windows)", "Moderately insulated", "Poorly insulated (drafts, single-pane windows)"}},
		{ID: "q_home_water_heater_type", Section: SectionHomeEnergy, Prompt: "What type of water heater do you have?", Type: QuestionTypeSingle, Options: []string{"Solar water heater", "Heat pump water heater", "Natural gas", "Electric (standard)", "Oil/propane"}},
		{ID: "q_home_lighting_type", Section: SectionHomeEnergy, Prompt: "What type of lighting do you primarily use?", Type: QuestionTypeSingle, Options: []string{"All LED bulbs", "Mix of LED and CFL", "Mix of LED/CFL and incandescent", "Mostly incandescent"}},

		{ID: "q_diet_meat_frequency", Section: SectionDiet, Prompt: "How often do you eat meat (beef, pork, lamb)?", Type: QuestionTypeSingle, Options: []string{"Multiple times per day", "Once per day", "A few times per week", "Rarely (once per month or less)", "Never (vegetarian/vegan)"}},
		{ID: "q_diet_primary_meat_type", Section: SectionDiet, Prompt: "Which type of meat do you eat most often?", Type: QuestionTypeSingle, Options: []string{"Beef (highest emissions)", "Pork", "Lamb", "Chicken/Turkey (lower emissions)", "Mix of different meats"}},
		{ID: "q_diet_dairy_eggs_frequency", Section: SectionDiet, Prompt: "How often do you consume dairy products and eggs?", Type: QuestionTypeSingle, Options: []string{"Multiple times per day", "Once per day", "A few times per week", "Rarely", "Never (vegan)"}},
		{ID: "q_diet_seafood_frequency", Section: SectionDiet, Prompt: "How often do you eat seafood?", Type: QuestionTypeSingle, Options: []string{"Multiple times per week", "Once per week", "A few times per month", "Rarely", "Never"}},
		{ID: "q_diet_plant_based_ratio", Section: SectionDiet, Prompt: "How much of your diet consists of plant-based foods (fruits, vegetables, grains, legumes)?", Type: QuestionTypeSingle, Options: []string{"Most of my diet (80%+)", "About half", "Less than half"}},
		{ID: "q_diet_local_organic_ratio", Section: SectionDiet, Prompt: "How much of your food is locally sourced or organic?", Type: QuestionTypeSingle, Options: []string{"Mostly local/organic (50%+)", "Some local/organic (20-50%)", "Little to no local/organic (<20%)"}},
		{ID: "q_diet_food_waste", Section: SectionDiet, Prompt: "How much food do you typically waste?", Type: QuestionTypeSingle, Options: []string{"Very little (use everything, compost scraps)", "Some waste (occasionally throw away leftovers)", "Moderate waste (regularly discard food)", "Significant waste (often throw away food)"}},

		{ID: "q_consumption_new_items_frequency", Section: SectionConsumption, Prompt: "How often do you buy new items (clothing, electronics, household goods)?", Type: QuestionTypeSingle, Options: []string{"Very rarely (only when necessary, minimal shopping)", "Occasionally (a few times per year)", "Regularly (monthly shopping)", "Frequently (weekly shopping, impulse buys)"}},
		{ID: "q_consumption_shopping_mode", Section: SectionConsumption, Prompt: "How do you primarily shop?", Type: QuestionTypeSingle, Options: []string{"Mostly in-store (local shopping)", "Mix of online and in-store", "Mostly online shopping"}},
		{ID: "q_consumption_electronics_frequency", Section: SectionConsumption, Prompt: "How often do you buy new electronics (phones, computers, gadgets)?", Type: QuestionTypeSingle, Options: []string{"Rarely (use until they break, 5+ years)", "Occasionally (every 3-4 years)", "Regularly (every 1-2 years)", "Frequently (upgrade often, latest models)"}},
		{ID: "q_consumption_fast_fashion_frequency", Section: SectionConsumption, Prompt: "How often do you buy new clothing from fast fashion brands?", Type: QuestionTypeSingle, Options: []string{"Never or rarely (buy quality, second-hand, or sustainable brands)", "Occasionally (a few items per year)", "Regularly (monthly purchases)", "Frequently (weekly purchases)"}},
		{ID: "q_consumption_furniture_frequency", Section: SectionConsumption, Prompt: "How often do you buy new furniture or major home goods?", Type: QuestionTypeSingle, Options: []string{"Rarely (buy quality items that last, second-hand)", "Occasionally (every few years)", "Regularly (yearly purchases)", "Frequently (multiple times per year)"}},
		{ID: "q_consumption_packaging_awareness", Section: SectionConsumption, Prompt: "How much attention do you pay to product packaging?", Type: QuestionTypeSingle, Options: []string{"Very aware (avoid excessive packaging, buy in bulk)", "Somewhat aware (occasionally choose less packaging)", "Not very aware (don't consider packaging)"}},

		{ID: "q_waste_recycle_level", Section: SectionWaste, Prompt: "How much do you recycle?", Type: QuestionTypeSingle, Options: []string{"Comprehensive (recycle everything possible, know local rules)", "Moderate (recycle common items like paper, plastic, glass)", "Minimal (recycle occasionally)", "Rarely or never"}},
		{ID: "q_waste_compost_frequency", Section: SectionWaste, Prompt: "Do you compost organic waste?", Type: QuestionTypeSingle, Options: []string{"Yes, regularly", "Occasionally", "No"}},
		{ID: "q_waste_single_use_frequency", Section: SectionWaste, Prompt: "How often do you use single-use items (plastic bags, disposable cups, bottled water)?", Type: QuestionTypeSingle, Options: []string{"Rarely or never (reusable alternatives)", "Occasionally", "Regularly", "Frequently"}},
		{ID: "q_waste_electronics_disposal", Section: SectionWaste, Prompt: "How do you dispose of old electronics?", Type: QuestionTypeSingle, Options: []string{"Properly recycle at e-waste facilities", "Sometimes recycle, sometimes trash", "Usually throw in regular trash"}},
		{ID: "q_waste_plastic_use", Section: SectionWaste, Prompt: "How much plastic do you use in daily life?", Type: QuestionTypeSingle, Options: []string{"Minimal (avoid plastic, use alternatives)", "Moderate (some plastic, try to reduce)", "High (use a lot of plastic products)"}},
		{ID: "q_waste_paper_use", Section: SectionWaste, Prompt: "How much paper do you use?", Type: QuestionTypeSingle, Options: []string{"Minimal (digital-first, print rarely)", "Moderate (some printing, but try to reduce)", "High (print frequently, use lots of paper)"}},
	},
}

// DefaultAnswers supplies a documented fallback for every question in the v1
// catalog. Unanswered questions are filled from this table after validation.
var DefaultAnswers = map[string]interface{}{
	"q_transport_car_own":                        false,
	"q_transport_km_per_week":                    float64(0),
	"q_transport_fuel_type":                      "Gasoline/Petrol",
	"q_transport_vehicle_age":                    "8-12 years old (average efficiency)",
	"q_transport_carpool_frequency":              "Never",
	"q_transport_walk_cycle_days_per_week":       float64(0),
	"q_transport_public_transport_days_per_week": float64(0),
	"q_transport_public_transport_trips_per_day": float64(0),
	"q_transport_public_transport_type":          "Bus",
	"q_transport_rideshare_trips_per_month":      float64(0),
	"q_transport_flights_per_year":               float64(0),
	"q_transport_flight_duration_hours":          float64(0),
	"q_transport_flight_class":                   "Economy",
	"q_home_size":                                "Medium (2-3 bedroom, 50-100 m² / 500-1000 sq ft)",
	"q_home_electricity_usage":                   "Average (typical household usage)",
	"q_home_appliance_efficiency":                "Mix of efficient and older appliances",
	"q_home_renewable_energy":                    "No, standard grid energy",
	"q_home_heating_source":                      "Natural gas",
	"q_home_heating_cooling_usage":               "Moderate (comfortable temperatures, some conservation)",
	"q_home_insulation":                          "Moderately insulated",
	"q_home_water_heater_type":                   "Natural gas",
	"q_home_lighting_type":                       "Mix of LED and CFL",
	"q_diet_meat_frequency":                      "A few times per week",
	"q_diet_primary_meat_type":                   "Mix of different meats",
	"q_diet_dairy_eggs_frequency":                "A few times per week",
	"q_diet_seafood_frequency":                   "Rarely",
	"q_diet_plant_based_ratio":                   "About half",
	"q_diet_local_organic_ratio":                 "Some local/organic (20-50%)",
	"q_diet_food_waste":                          "Some waste (occasionally throw away leftovers)",
	"q_consumption_new_items_frequency":          "Occasionally (a few times per year)",
	"q_consumption_shopping_mode":                "Mix of online and in-store",
	"q_consumption_electronics_frequency":        "Occasionally (every 3-4 years)",
	"q_consumption_fast_fashion_frequency":       "Occasionally (a few items per year)",
	"q_consumption_furniture_frequency":          "Occasionally (every few years)",
	"q_consumption_packaging_awareness":          "Somewhat aware (occasionally choose less packaging)",
	"q_waste_recycle_level":                      "Moderate (recycle common items like paper, plastic, glass)",
	"q_waste_compost_frequency":                  "Occasionally",
	"q_waste_single_use_frequency":               "Occasionally",
	"q_waste_electronics_disposal":               "Sometimes recycle, sometimes trash",
	"q_waste_plastic_use":                        "Moderate (some plastic, try to reduce)",
	"q_waste_paper_use":                          "Moderate (some printing, but try to reduce)",
}

// QuestionnaireCompression is a token-budget-friendly snapshot of a user's
// answers plus footprint breakdown, stored on the profile and fed to the
// suggestion service as personalization context.
type QuestionnaireCompression struct {
	Version            string                            `json:"version"`
	FootprintKgPerYear int                               `json:"footprintKgPerYear"`
	BreakdownKgPerYear CompressedBreakdown               `json:"breakdownKgPerYear"`
	TopEmissionArea    string                            `json:"topEmissionArea"`
	AnswersByArea      map[string]map[string]interface{} `json:"answersByArea"`
	CompactSummary     string                            `json:"compactSummary"`
}

// CompressedBreakdown holds the whole-kg rounded per-area breakdown
type CompressedBreakdown struct {
	Transport int `json:"transport"`
	Home      int `json:"home"`
	Diet      int `json:"diet"`
}

// SubmitQuestionnaireRequest is the body of POST /v1/questionnaire/submit
type SubmitQuestionnaireRequest struct {
	QuestionnaireVersion string                 `json:"questionnaireVersion"`
	Answers              map[string]interface{} `json:"answers"`
}

// SubmitQuestionnaireResponse reports the computed footprint and any
// default-substitution assumptions made while mapping the answers.
type SubmitQuestionnaireResponse struct {
	InitialFootprintKg float64  `json:"initialFootprintKg"`
	Assumptions        []string `json:"assumptions"`
}

// QuestionnaireSave is the persisted outcome of a successful submission.
// Answers, footprint, and compression are written together; a resubmission
// overwrites the whole set.
type QuestionnaireSave struct {
	Version            string
	Answers            map[string]interface{}
	InitialFootprintKg float64
	Compression        *QuestionnaireCompression
}
