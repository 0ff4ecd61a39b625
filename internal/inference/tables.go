package inference

import "github.com/HendryAvila/cyclesense/internal/profile"

// Fallback texts for profiles without a table entry.
const (
	FallbackDescription      = "Cycle profile combining length pattern and stability characteristics."
	FallbackTTC              = "Cycle implications not fully mapped yet."
	FallbackClinical         = "Cycle implications not fully mapped."
	FallbackShortDescription = "Cycle profile description not available."
)

var descriptions = map[profile.Logical]string{
	// Stable
	profile.StableCompact:  "Short, predictable cycles; avg. age ~32, BMI ~25.7. ~3 pregnancies. ~26% complications — reliable but not risk-free.",
	profile.StableBalanced: "Consistently regular cycles; avg. age ~31, BMI ~23.4. ~3–4 pregnancies. ~30% complications despite steady rhythm.",
	profile.StableDelayed:  "Slightly longer but steady cycles; avg. age ~30, BMI ~24.1. ~2.5 pregnancies. No complications observed (tiny cluster, interpret cautiously).",
	profile.StableExtended: "Longest predictable cycles; younger (~29), BMI ~24.3. ~2 pregnancies. No complications seen.",

	// Somewhat irregular
	profile.MostlySteadyBalanced:      "Balanced cycles with mild irregularity; avg. age ~30, BMI ~24.5. ~2 pregnancies. ~27% complications — early warning cluster.",
	profile.SomewhatIrregularCompact:  "Short but mildly irregular; older (~33–34), BMI ~25.9. ~2 pregnancies. ~25% complication rate.",
	profile.SomewhatIrregularDelayed:  "Long, mildly irregular cycles; avg. age ~31, BMI ~23.7. ~2–3 pregnancies. ~17% complication rate.",
	profile.SomewhatIrregularExtended: "Very long, mildly irregular; avg. age ~30, leaner (BMI ~21). ~2 pregnancies. ~10% complication rate.",

	// Unstable
	profile.UnstableCompact:  "Short, highly variable cycles; oldest group (~38), BMI ~26.2. ~5 pregnancies. 100% complications — very high risk cluster.",
	profile.UnstableBalanced: "Average-length but highly variable; avg. age ~32, BMI ~26.4. ~3–4 pregnancies. ~33% complication rate.",
	profile.UnstableDelayed:  "Long and highly variable; younger (~28), BMI ~28.0. ~2 pregnancies. ~33% complication rate.",
	profile.UnstableExtended: "Very long and highly variable; avg. age ~32, BMI ~29.1. ~3 pregnancies. ~40% complication rate.",

	// Rare
	profile.CriticalExtended: "Extended but unstable; very rare (n=1). Age ~25, BMI ~25.1, no pregnancies or complications. Interpret individually.",
}

var ttcNotes = map[profile.Logical]string{
	profile.StableCompact:  "Generally favorable for TTC. Predictable cycles help timing. Watch for luteal sufficiency.",
	profile.StableBalanced: "Most fertile baseline group. If there is difficulty conceiving, causes may lie outside cycle rhythm.",
	profile.StableDelayed:  "Later ovulation reduces the number of fertile windows per year. TTC may take longer despite stable cycles.",
	profile.StableExtended: "Predictable but late ovulation. TTC might require patience. Monitor luteal adequacy.",

	profile.MostlySteadyBalanced:      "Mild irregularity can delay TTC. Tracking is still useful, though timing may be less precise.",
	profile.SomewhatIrregularCompact:  "Older age combined with irregularity raises TTC challenges. May signal declining ovarian reserve.",
	profile.SomewhatIrregularDelayed:  "Longer cycles reduce conception opportunities. TTC delay is possible but not prohibitive.",
	profile.SomewhatIrregularExtended: "Very long cycles make conception windows sparse. Early assessment may be warranted.",

	profile.UnstableCompact:  "Highly irregular cycles in advanced age with complications. TTC prognosis is guarded. Seek evaluation.",
	profile.UnstableBalanced: "Cycles are unpredictable. Conception is possible but erratic. Consider ovulation testing.",
	profile.UnstableDelayed:  "Metabolic risk profile may be present. TTC may be impaired by anovulation. Lifestyle support can help.",
	profile.UnstableExtended: "Highly irregular cycles with high BMI create a double barrier for TTC. Referral for PCOS or endocrine evaluation is likely.",

	profile.CriticalExtended: "Very rare pattern. Individualized TTC approach is recommended.",
}

var clinicalNotes = map[profile.Logical]string{
	profile.StableCompact:  "Predictable, short cycles. Usually ovulatory. Monitor for luteal phase adequacy.",
	profile.StableBalanced: "Normal ovulatory pattern. No immediate cycle-related red flags.",
	profile.StableDelayed:  "Later ovulation. May warrant luteal monitoring.",
	profile.StableExtended: "Late but regular ovulation. Keep in mind risk of subfertility if luteal phase is short.",

	profile.MostlySteadyBalanced:      "Mild irregularity. Could be early ovulatory dysfunction. Watch metabolic or endocrine markers.",
	profile.SomewhatIrregularCompact:  "Short but irregular cycles in an older age group. Possible diminished ovarian reserve.",
	profile.SomewhatIrregularDelayed:  "Long but mildly irregular cycles. Check for anovulation or thyroid dysfunction.",
	profile.SomewhatIrregularExtended: "Very long cycles in a leaner profile. Possible hypothalamic dysfunction.",

	profile.UnstableCompact:  "Highly irregular cycles in older age. Consistent with perimenopausal transition. High complication risk.",
	profile.UnstableBalanced: "Irregular cycles with average cycle length. May reflect subclinical ovulatory dysfunction.",
	profile.UnstableDelayed:  "Long, variable cycles with higher BMI. Screen for PCOS or metabolic syndrome.",
	profile.UnstableExtended: "Very long, highly irregular cycles with high BMI. Strong PCOS suspicion. Evaluate endocrine profile.",

	profile.CriticalExtended: "Rare presentation. Interpret with caution. Individualized evaluation required.",
}

// Mostly Steady-Balanced has no user-facing line and gets the fallback.
var shortDescriptions = map[profile.Logical]string{
	profile.StableBalanced:            "Your cycles are quite regular and steady; a reliable rhythm.",
	profile.StableCompact:             "Your cycles are short but consistent.",
	profile.StableDelayed:             "Your cycles are a bit longer than average but still predictable.",
	profile.StableExtended:            "Your cycles run longer than usual but remain steady.",
	profile.SomewhatIrregularCompact:  "Your cycles are shorter but sometimes unpredictable.",
	profile.SomewhatIrregularDelayed:  "Your cycles can run long and vary more than usual.",
	profile.SomewhatIrregularExtended: "Your cycles are extended and less predictable.",
	profile.UnstableBalanced:          "Your cycles show ups and downs despite some balance.",
	profile.UnstableCompact:           "Your cycles are short and quite erratic.",
	profile.UnstableDelayed:           "Your cycles are long and irregular.",
	profile.UnstableExtended:          "Your cycles are extended and very inconsistent.",
	profile.CriticalExtended:          "Your cycles are severely prolonged and need close medical attention.",
}

func lookup(table map[profile.Logical]string, l profile.Logical, fallback string) string {
	if s, ok := table[l]; ok {
		return s
	}
	return fallback
}
