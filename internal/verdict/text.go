package verdict

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/fakecheck/internal/model"
	"github.com/sells-group/fakecheck/pkg/factcheck"
)

// CheckText looks the request up in published claim reviews and scores it.
// Provider failures are logged and treated as no evidence; CheckText never
// fails.
//
// Rules run in order: claim scan, sensational language, trusted sources,
// clamp. A debunking rating from a reviewer marks the item fake regardless
// of later adjustments; otherwise it is fake when confidence ends below 0.5.
func (e *Engine) CheckText(ctx context.Context, req model.CheckRequest) model.Verdict {
	v := model.NewVerdict(SummaryNoVerification)
	query := req.Query()
	log := zap.L().With(zap.String("query", truncate(query, 120)))

	var claims []factcheck.Claim
	switch {
	case e.facts == nil:
		log.Debug("verdict: fact-check provider not configured")
	case strings.TrimSpace(query) == "":
		log.Debug("verdict: empty query, skipping lookup")
	default:
		found, err := e.searchClaims(ctx, query)
		if err != nil {
			log.Warn("verdict: claim search failed, treating as no evidence", zap.Error(err))
		}
		claims = found
	}

	matched, reviewed := scanClaims(&v, claims, log)
	if reviewed == 0 {
		v.Suggest(SuggestManualCheck)
	}

	if e.rules.IsSensational(req.Text()) {
		v.Confidence -= sensationalPenalty
		v.Suggest(SuggestSensational)
	}

	if e.rules.HasTrustedSource(v.Sources) {
		v.Confidence += trustedSourceBonus
		v.Suggest(SuggestTrustedSource)
	}

	v.Clamp()
	v.IsFake = matched || v.Confidence < fakeThreshold

	log.Info("verdict: text check complete",
		zap.Bool("is_fake", v.IsFake),
		zap.Float64("confidence", v.Confidence),
		zap.Int("claims", len(claims)),
		zap.Int("sources", len(v.Sources)),
	)
	return v
}

// scanClaims consults the first review of each claim in provider order. The
// first debunking rating wins and stops the scan; otherwise the last
// reviewed claim sets the summary. Claims without a review are skipped.
func scanClaims(v *model.Verdict, claims []factcheck.Claim, log *zap.Logger) (matched bool, reviewed int) {
	for i, claim := range claims {
		review, ok := claim.FirstReview()
		if !ok {
			log.Debug("verdict: claim has no review", zap.Int("index", i))
			continue
		}
		reviewed++

		if review.URL != "" {
			v.Sources = append(v.Sources, review.URL)
		}

		if isFakeRating(review.TextualRating) {
			v.Confidence = fakeRatingScore
			v.Summary = review.TextualRating
			return true, reviewed
		}
		v.Confidence = reviewedScore
		v.Summary = review.TextualRating
	}
	return false, reviewed
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
