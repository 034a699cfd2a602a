package apierr

// codeHints maps common Graph API error codes to remediation hints surfaced
// in diagnostics. The set follows the Marketing API error reference; codes
// outside it fall back to a generic pointer at the documentation.
var codeHints = map[int]string{
	1:       "Unknown API error, usually transient. Wait and retry the call.",
	2:       "Service temporarily unavailable. Wait and retry the call.",
	4:       "Application request limit reached. Reduce call frequency.",
	10:      "Permission denied. Check that the token grants ads_management.",
	17:      "User request limit reached. Reduce call frequency for this token.",
	100:     "Invalid parameter. Check required fields and value formats.",
	102:     "Session expired. Generate a new access token.",
	190:     "Access token invalid or expired. Generate a new access token.",
	200:     "Insufficient permission for this action on the ad account.",
	270:     "This endpoint requires a page access token.",
	294:     "Managing advertisements requires the ads_management permission.",
	613:     "Rate limit on this ad account reached. Wait before retrying.",
	2635:    "The API version in use is deprecated. Upgrade the pinned version.",
	80000:   "Too many Marketing API calls for this app. Wait before retrying.",
	80004:   "Too many calls for this ad account. Wait before retrying.",
	2446404: "Budget too low. Budgets are denominated in cents and have per-currency minimums.",
}

const genericHint = "Check the Marketing API error documentation for this code."

// HintForCode returns a remediation hint for a Graph error code. Unknown
// codes get the generic hint; code zero (no structured code) gets none.
func HintForCode(code int) string {
	if code == 0 {
		return ""
	}
	if hint, ok := codeHints[code]; ok {
		return hint
	}
	return genericHint
}
