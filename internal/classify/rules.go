package classify

// Default tag names outside the topic rule table.
const (
	DefaultFallbackTag  = "General ENT/Other"
	DefaultPediatricTag = "Pediatrics"
)

// PediatricPattern marks population vocabulary that adds the pediatric tag on top of any topic.
const PediatricPattern = `\b(pediatric|child|children|infant|neonate|adolesc|toddler|newborn)\b`

// DefaultRules is the topic table: tag name to case-insensitive patterns, any of which tags a session.
func DefaultRules() map[string][]string {
	return map[string][]string{
		"Rhinology & Allergy": {
			`rhino`, `sinus`, `nasal`, `nose`, `septum`, `polyp`, `olfact`, `smell`, `sinonasal`,
			`nasophary`, `epistaxis`,
		},
		"Otology & Neurotology": {
			`cochlea`, `ear`, `otic`, `tympan`, `mastoid`, `ossicul`, `vestib`, `tinnitus`, `hearing`,
			`ossicular`, `otos`, `eustachian`,
		},
		"Audiology & Hearing Science": {
			`audiology`, `audiogram`, `speech perception`, `listening`, `hearing aid`, `cochlear implant`,
		},
		"Laryngology & Voice": {
			`laryn`, `vocal cord`, `voice`, `phonation`, `glott`, `dysphonia`, `esophag`,
		},
		"Airway & Trachea": {
			`airway`, `trache`, `bronch`, `intubat`, `decann`, `stent`,
		},
		"Sleep Medicine": {
			`sleep`, `apnea`, `hypopnea`, `cpap`, `osa\b`,
		},
		"Head & Neck Oncology": {
			`carcinoma`, `cancer`, `tumou?r`, `neoplasm`, `sarcoma`, `oncology`, `malignan`, `papilloma`,
		},
		"Endocrine (Thyroid/Parathyroid)": {
			`thyroid`, `parathy`, `endocrine`,
		},
		"Salivary & Oral Cavity": {
			`salivar`, `parotid`, `submandibular`, `sublingual`, `sialo`, `oral cavity`, `tongue`, `palate`,
			`tonsil`,
		},
		"Facial Plastics & Reconstruction": {
			`facial`, `reconstruct`, `rhinoplast`, `cleft`, `aesthe`, `cosmetic`, `flap`, `graft`, `scar`,
		},
		"Skull Base & Cranial": {
			`skull base`, `cranial`, `intracran`, `cerebrospinal`, `csf`, `pituitar`, `meningioma`,
		},
		"Trauma": {
			`trauma`, `fracture`, `injur`, `gunshot`, `laceration`,
		},
		"Infectious Disease": {
			`infect`, `viral`, `bacterial`, `fungal`, `abscess`, `mycobacter`, `sepsis`,
		},
	}
}

// MergeRules overlays extra on base; a tag present in extra replaces the base patterns.
func MergeRules(base, extra map[string][]string) map[string][]string {
	out := make(map[string][]string, len(base)+len(extra))
	for name, patterns := range base {
		out[name] = append([]string(nil), patterns...)
	}
	for name, patterns := range extra {
		out[name] = append([]string(nil), patterns...)
	}
	return out
}
