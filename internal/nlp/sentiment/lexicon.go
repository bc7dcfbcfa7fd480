package sentiment

// valences maps words to signed intensity in roughly [-4, 4], following the
// usual valence-lexicon convention. The table is trimmed to vocabulary that
// shows up in civic grievances.
var valences = map[string]float64{
	// positive
	"good": 1.9, "great": 3.1, "excellent": 2.7, "best": 3.2, "better": 1.9,
	"improve": 1.7, "improved": 1.9, "improvement": 1.5, "thank": 1.9,
	"thanks": 1.9, "grateful": 2.3, "appreciate": 1.8, "happy": 2.7,
	"glad": 2.0, "hope": 1.9, "hopeful": 1.9, "kindly": 1.5, "please": 1.3,
	"support": 1.7, "help": 1.7, "helpful": 1.9, "resolve": 1.4,
	"resolved": 1.6, "clean": 1.7, "safe": 1.9, "working": 1.2,
	"welcome": 2.0, "fine": 0.8, "nice": 1.8, "timely": 1.4, "prompt": 1.5,

	// negative
	"bad": -2.5, "worse": -2.1, "worst": -3.1, "terrible": -3.1,
	"horrible": -2.5, "awful": -2.0, "poor": -1.9, "pathetic": -2.6,
	"broken": -1.8, "damaged": -1.9, "damage": -1.8, "danger": -2.9,
	"dangerous": -2.4, "dirty": -1.9, "filthy": -2.4, "unsafe": -2.2,
	"risk": -1.1, "risky": -1.4, "problem": -1.7, "problems": -1.7,
	"issue": -0.8, "issues": -0.9, "complaint": -1.2, "fail": -2.3,
	"failed": -2.1, "failure": -2.2, "neglect": -2.0, "neglected": -2.1,
	"ignore": -1.5, "ignored": -1.7, "delay": -1.3, "delayed": -1.4,
	"slow": -1.0, "lack": -1.4, "lacks": -1.4, "lacking": -1.5,
	"shortage": -1.6, "scarcity": -1.8, "crisis": -3.1, "emergency": -2.1,
	"urgent": -1.2, "critical": -1.4, "severe": -2.0, "fatal": -3.2,
	"death": -2.9, "accident": -2.1, "injury": -1.9, "injured": -2.0,
	"sick": -1.7, "disease": -1.9, "suffering": -2.4, "suffer": -2.1,
	"angry": -2.3, "frustrated": -2.1, "frustrating": -2.2, "upset": -1.8,
	"disappointed": -2.0, "disappointing": -2.1, "unacceptable": -2.4,
	"corrupt": -2.5, "corruption": -2.4, "illegal": -2.2, "crime": -2.5,
	"theft": -2.2, "attack": -2.1, "attacking": -2.1, "threat": -2.1,
	"threatening": -2.3, "afraid": -1.9, "fear": -1.8, "scared": -2.0,
	"overflow": -1.3, "blocked": -1.4, "leaking": -1.3, "contaminated": -2.2,
	"pollution": -1.8, "noise": -1.0, "garbage": -1.4, "stink": -2.0,
	"smell": -0.9, "unbearable": -2.5, "misery": -2.7, "helpless": -2.0,
	"wrong": -2.1, "overcharged": -1.7, "overcharging": -1.7,
}

// negators invert the valence of a following word.
var negators = map[string]bool{
	"not": true, "never": true, "no": true, "none": true, "neither": true,
	"nobody": true, "nothing": true, "nowhere": true, "hardly": true,
	"barely": true, "scarcely": true, "without": true, "cannot": true,
	"cant": true, "dont": true, "doesnt": true, "didnt": true, "wont": true,
	"isnt": true, "arent": true, "wasnt": true, "werent": true,
}

// boosters intensify or dampen the valence of a following word.
var boosters = map[string]float64{
	"very": 0.293, "extremely": 0.293, "really": 0.293, "so": 0.293,
	"completely": 0.293, "absolutely": 0.293, "totally": 0.293,
	"highly": 0.293, "terribly": 0.293, "utterly": 0.293,
	"slightly": -0.293, "somewhat": -0.293, "barely": -0.293,
	"marginally": -0.293, "little": -0.293,
}
