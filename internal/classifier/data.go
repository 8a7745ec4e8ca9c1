package classifier

// Fixed lookup tables. All matching is lowercase substring matching against
// the aggregated site text, so entries are stored lowercase.

// biglawFirms are top-tier organizations whose name alone outweighs any
// quantitative heuristic. A match short-circuits the whole pipeline.
var biglawFirms = []string{
	"kirkland & ellis",
	"latham & watkins",
	"dla piper",
	"baker mckenzie",
	"skadden",
	"sidley austin",
	"white & case",
	"jones day",
	"hogan lovells",
	"norton rose fulbright",
	"gibson dunn",
	"clifford chance",
	"linklaters",
	"allen & overy",
	"freshfields",
	"sullivan & cromwell",
	"cravath",
	"davis polk",
	"weil gotshal",
	"paul weiss",
	"simpson thacher",
	"cleary gottlieb",
	"morgan lewis",
	"ropes & gray",
	"wachtell",
	"covington & burling",
	"debevoise",
	"mayer brown",
	"king & spalding",
	"quinn emanuel",
	"wilmerhale",
	"akin gump",
	"orrick",
	"greenberg traurig",
	"mcdermott will & emery",
}

// megaFirms are organizations known to be very large. A match relaxes
// standard scoring elsewhere (outlier flag) without fixing the tier.
var megaFirms = []string{
	"dentons",
	"baker mckenzie",
	"dla piper",
	"norton rose fulbright",
	"clifford chance",
	"linklaters",
	"hogan lovells",
	"jones day",
	"kirkland & ellis",
	"latham & watkins",
	"littler mendelson",
	"jackson lewis",
	"ogletree deakins",
}

// prestigeTerms mark industry-prestige positioning in site copy.
var prestigeTerms = []string{
	"am law 100",
	"amlaw 100",
	"am law 200",
	"vault 100",
	"chambers and partners",
	"chambers usa",
	"chambers global",
	"legal 500",
	"white shoe",
	"magic circle",
	"best lawyers",
	"super lawyers",
	"band 1",
	"national law journal",
	"benchmark litigation",
}
