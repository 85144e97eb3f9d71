package keywords

import "sync"

// EdgeBonus is the per-occurrence affidavit bonus for first-person
// declarative phrasing.
const EdgeBonus = 50

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the process-wide tables built from the curated lists.
// The tables are expanded on first use and shared afterward.
func Default() *Tables {
	defaultOnce.Do(func() {
		defaultTables = NewTables(
			KeywordSet{
				Type:       RTI,
				Keywords:   rtiKeywords,
				Negatives:  rtiNegatives,
				BaseWeight: 8,
			},
			KeywordSet{
				Type:       Affidavit,
				Keywords:   affidavitKeywords,
				Negatives:  affidavitNegatives,
				BaseWeight: 7,
			},
			edgePhrases,
		)
	})
	return defaultTables
}

var edgePhrases = []string{
	"proof that i am", "proof that i", "certificate that i am", "certificate that i",
	"declare that i", "state that i", "affirm that i", "certify that i",
	"confirm that i", "testify that i", "my name is", "i hereby",
	"i solemnly", "proof of my", "officially confirm", "officially declare",
}

var rtiKeywords = []string{
	// statute and officers
	"rti", "right to information", "right to information act", "information act",
	"rti act 2005", "section 6", "section 7", "section 8", "section 18", "section 19",
	"first appeal", "second appeal", "pio", "cpio", "spio",
	"public information officer", "appellate authority", "faa", "sic", "cic",
	"information commission", "state information commission", "central information commission",

	// intent
	"want to know", "need to know", "seeking information", "request information",
	"request details", "ask details", "obtain details", "obtain copy", "provide copy",
	"give copy", "furnish details", "supply information", "share information",
	"disclose information", "inspection of records", "certified copy", "attested copy",
	"true copy", "request copy", "need copy", "get copy", "copy of",

	// records and files
	"record", "official record", "government record", "department record",
	"document", "official document", "file", "file noting", "file notings",
	"movement of file", "correspondence", "internal correspondence", "office note",
	"register", "ledger", "logbook", "report", "inspection report", "audit report",
	"vigilance report", "enquiry report", "committee report", "government file",

	// status and action taken
	"status of application", "status of complaint", "action taken", "action taken report",
	"atr", "progress report", "pending status", "delay reason", "timeline",
	"reason for delay", "why not approved", "why rejected", "grounds of rejection",
	"status update", "current status", "application status",

	// education
	"answer sheet", "evaluated answer sheet", "exam answer sheet", "mark sheet",
	"marksheet", "marksheet copy", "marks obtained", "grade sheet", "cutoff marks", "cutoff mark",
	"revaluation result", "moderation marks", "internal marks", "attendance record",
	"exam record", "admission form", "application form", "evaluation criteria",
	"exam rules", "university", "university record", "college record", "academic record",
	"transcript", "degree certificate", "diploma", "enrollment record",
	"registration record", "exam paper", "question paper", "assessment record",

	// land and revenue
	"7/12 extract", "satbara", "property card", "mutation entry", "ferfar",
	"record of rights", "land record", "survey number", "gat number", "cts number",
	"measurement record", "demarcation record", "land acquisition file",
	"award copy", "compensation details", "ownership record", "title record",
	"property document", "registry copy", "sale deed copy",

	// police
	"fir copy", "complaint status", "police complaint", "diary entry", "nc complaint",
	"case diary", "chargesheet status", "investigation status", "action taken by police",
	"reason for no fir", "police record", "station diary",

	// schemes, tenders and funds
	"tender document", "bid details", "contract copy", "work order",
	"utilization certificate", "fund allocation", "fund release", "scheme guidelines",
	"beneficiary list", "selection criteria", "contractor details", "payment details",
	"bill copy", "voucher copy", "tender notice", "quotation", "proposal",

	// government service
	"service record", "appointment order", "joining report", "promotion details",
	"transfer order", "posting order", "salary details", "pay scale", "pay slip",
	"arrears calculation", "pension record", "gratuity details", "service book",
	"employment record", "appointment letter", "increment details",

	// transparency
	"transparency", "accountability", "public interest", "public money",
	"taxpayer money", "misuse of funds", "irregularities", "procedure followed",
	"rule followed", "compliance report", "disclosure", "public authority",

	// public bodies
	"government information", "public sector", "municipality", "panchayat",
	"ministry", "department", "government department", "public office",
	"government office", "authority information", "official information",
	"copy of document", "information sought", "details requested",
}

var rtiNegatives = []string{
	"court affidavit", "sworn before", "notarize", "notary", "deponent",
	"solemnly swear", "penalty of perjury", "court case affidavit",
	"file in court", "submit to court", "legal proceedings affidavit",
	"my name is", "i hereby declare", "i solemnly",
}

var affidavitKeywords = []string{
	// core
	"affidavit", "sworn affidavit", "self affidavit", "sworn statement",
	"self declaration", "declaration", "undertaking", "solemnly declare",
	"hereby declare", "affirm", "swear", "oath", "deponent", "affiant",
	"solemn affirmation", "sworn before", "sworn testimony",

	// identity
	"my name is", "name correction", "name mismatch", "alias", "also known as",
	"address proof", "residential address", "current address", "permanent address",
	"identity proof", "proof of identity", "verify my identity", "confirm my name",
	"proof of residence", "proof of address",

	// civil status
	"date of birth", "dob correction", "age proof", "nationality declaration",
	"citizenship declaration", "religion declaration", "marital status",
	"single status", "unmarried", "married", "divorced", "widow", "widower",
	"birth date affidavit", "age declaration", "status declaration",

	// income and dependency
	"income affidavit", "income declaration", "annual income", "below poverty line",
	"bpl declaration", "non creamy layer", "dependent on parents", "family income",
	"unemployed", "not employed", "self employed declaration", "student declaration",
	"financially dependent", "income certificate affidavit", "poverty affidavit",

	// loss
	"lost document", "lost certificate", "misplaced document", "damage of document",
	"not traceable", "document destroyed", "fir for loss", "loss declaration",
	"certificate lost", "lost my certificate", "document missing",
	"cannot find document", "destroyed document",

	// education
	"gap affidavit", "education gap", "year gap", "bonafide declaration",
	"character affidavit", "conduct affidavit", "anti ragging affidavit",
	"study gap", "break in education", "gap certificate affidavit",
	"character certificate affidavit",

	// family
	"legal heir affidavit", "surviving member", "family tree", "relationship proof",
	"father name", "mother name", "guardian declaration", "next of kin",
	"heir certificate", "succession affidavit", "family member affidavit",
	"parent details", "relationship declaration",

	// passport and immigration
	"passport affidavit", "annexure e", "annexure f", "no objection affidavit",
	"noc affidavit", "address verification", "identity verification",
	"passport application affidavit", "visa affidavit", "immigration affidavit",
	"police verification affidavit", "noc for passport",

	// court filing
	"filed before court", "submitted to court", "court affidavit",
	"judicial proceeding", "legal proceeding", "case affidavit", "petition affidavit",
	"court filing", "legal filing", "affidavit for court", "submit affidavit",
	"file affidavit", "court submission", "legal matter affidavit",
	"case filing", "petition filing",

	// truth statements
	"true and correct", "best of my knowledge", "nothing concealed",
	"no criminal record", "no pending case", "not involved in offence",
	"truthfully declare", "honestly state", "verify facts", "certify truth",
	"confirm authenticity", "guarantee accuracy",

	// purpose
	"testimony", "evidence", "witness", "statement of facts", "legal document",
	"notarize", "notary", "attestation", "certified statement",

	// common scenarios
	"name change", "change of name", "surname change", "income proof",
	"relationship certificate", "birth certificate affidavit",
	"death certificate affidavit", "marriage certificate affidavit",

	// litigation
	"criminal case", "civil case", "family court", "divorce", "custody",
	"property dispute", "inheritance", "will", "succession", "litigation",
	"lawsuit", "tribunal", "hearing", "judge", "magistrate", "attorney", "lawyer",

	// administrative
	"visa application", "immigration", "legal heir certificate",
	"verification affidavit", "self certification",

	// verification
	"verify", "verification", "certified", "authentic", "genuine",
	"true statement", "correct statement", "accurate statement",

	// first-person declarations
	"proof that i am", "certificate that i am", "government proof of my statement",
	"official confirmation of my claim", "declare officially", "confirm officially",
	"legally certify my statement", "sworn proof", "legal proof of my identity",
	"official proof of", "certify that i", "confirm that i", "declare that i",
	"state that i", "affirm that i", "testify that i",
}

var affidavitNegatives = []string{
	"government record", "government file", "public authority record",
	"rti application", "information commission", "pio", "cpio",
	"right to information", "seeking information from government",
	"government information", "public information officer",
}
