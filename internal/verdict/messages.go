package verdict

// Summaries and suggestions returned to callers.
const (
	SummaryNoVerification   = "No verification found."
	SummaryMediaUnsupported = "Video checking is not supported yet."

	SuggestManualCheck     = "Cross-check this story with official, mainstream news sources."
	SuggestSensational     = "The text uses sensational language; treat it with caution."
	SuggestTrustedSource   = "At least one source is a credible news outlet."
	SuggestVerifyManually  = "Please verify this media manually."
	SuggestImageUnverified = "Could not verify the image."
	SuggestCorroborated    = "Many corroborating sources were found on the Internet."
	SuggestPossibleMeme    = "This image may be a meme; do not take it as absolute truth."
)

const (
	fakeRatingScore    = 0.9
	reviewedScore      = 0.7
	sensationalPenalty = 0.2
	trustedSourceBonus = 0.1
	corroborationBonus = 0.2
	memePenalty        = 0.2

	// corroborationMinSources is exclusive: more than this many similar
	// images count as corroboration.
	corroborationMinSources = 3

	fakeThreshold = 0.5
)
