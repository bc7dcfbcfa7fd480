package classify

// trainingCorpus is the embedded labeled corpus the classifier is fitted on
// at startup. Eight short example grievances per department.
var trainingCorpus = map[Category][]string{
	Education: {
		"school building needs repair",
		"teacher shortage in primary school",
		"lack of books in college library",
		"playground not maintained properly",
		"computer lab equipment outdated",
		"school fees too high need scholarship",
		"no proper drinking water in school",
		"classroom overcrowded need more sections",
	},
	Healthcare: {
		"hospital lacks basic medicines",
		"doctor not available in clinic",
		"ambulance service very slow",
		"medical equipment not working",
		"long waiting time for treatment",
		"pharmacy closed during emergency",
		"no beds available in hospital",
		"vaccination center not functional",
	},
	Infrastructure: {
		"road full of potholes needs repair",
		"bridge damaged dangerous for vehicles",
		"street lights not working dark at night",
		"drainage system blocked water logging",
		"footpath broken pedestrians at risk",
		"public toilet in bad condition",
		"park needs maintenance cleaning",
		"building construction illegal blocking road",
	},
	Transport: {
		"bus service irregular timings",
		"auto rickshaw overcharging passengers",
		"traffic signal not working properly",
		"parking space insufficient in area",
		"bus stop shelter damaged",
		"road congestion during peak hours",
		"metro station escalator broken",
		"taxi drivers refusing short distance",
	},
	WaterSupply: {
		"no water supply for three days",
		"water pipeline leaking wasting water",
		"dirty water coming from tap",
		"water pressure very low",
		"water tanker not coming regularly",
		"sewage overflow in residential area",
		"water bill incorrect overcharged",
		"bore well contaminated need testing",
	},
	Electricity: {
		"power cut daily for hours",
		"electric pole damaged dangerous",
		"street light not working",
		"electricity bill wrong meter reading",
		"transformer making loud noise",
		"voltage fluctuation damaging appliances",
		"illegal electricity connection in area",
		"power cable hanging low risk",
	},
	PublicSafety: {
		"stray dogs attacking people",
		"theft cases increasing in locality",
		"illegal liquor shop operating",
		"fire safety equipment missing",
		"suspicious activity in neighborhood",
		"street crime at night no police",
		"building fire risk no exit",
		"drug peddling near school",
	},
	Others: {
		"noise pollution from construction",
		"garbage not collected regularly",
		"tree cutting without permission",
		"air pollution from factory",
		"encroachment on public land",
		"corruption in government office",
		"document verification delay",
		"pension not received on time",
	},
}
