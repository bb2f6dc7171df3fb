package verdict

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/fakecheck/internal/model"
	"github.com/sells-group/fakecheck/pkg/vision"
)

// CheckMedia scores an uploaded image by its web-detection footprint.
// Non-image media, or a missing vision provider, get a fixed
// unsupported-media verdict. Provider failures add a suggestion and leave
// the neutral score; CheckMedia never fails.
func (e *Engine) CheckMedia(ctx context.Context, req model.MediaCheckRequest) model.Verdict {
	log := zap.L().With(
		zap.String("content_type", req.ContentType),
		zap.Int("bytes", len(req.Data)),
	)

	if !req.IsImage() || e.vision == nil {
		log.Debug("verdict: media not checkable", zap.Bool("vision_configured", e.vision != nil))
		return unsupportedMedia()
	}

	v := model.NewVerdict(SummaryNoVerification)
	if len(req.Data) == 0 {
		log.Warn("verdict: empty image upload")
		v.Suggest(SuggestImageUnverified)
	} else if det, err := e.detectWeb(ctx, req.Data); err != nil {
		log.Warn("verdict: web detection failed", zap.Error(err))
		v.Suggest(SuggestImageUnverified)
	} else {
		applyWebDetection(&v, det)
	}

	v.Clamp()
	v.IsFake = v.Confidence < fakeThreshold

	log.Info("verdict: media check complete",
		zap.Bool("is_fake", v.IsFake),
		zap.Float64("confidence", v.Confidence),
		zap.Int("sources", len(v.Sources)),
	)
	return v
}

func applyWebDetection(v *model.Verdict, det *vision.WebDetection) {
	if det == nil {
		return
	}

	if len(det.BestGuessLabels) > 0 {
		labels := make([]string, 0, len(det.BestGuessLabels))
		for _, l := range det.BestGuessLabels {
			if l.Label != "" {
				labels = append(labels, l.Label)
			}
		}
		if len(labels) > 0 {
			v.Summary = strings.Join(labels, ", ")
		}
	}

	for _, ent := range det.WebEntities {
		if ent.Description != "" {
			v.Suggest(ent.Description)
		}
	}

	for _, img := range det.VisuallySimilarImages {
		if img.URL != "" {
			v.Sources = append(v.Sources, img.URL)
		}
	}

	if len(v.Sources) > corroborationMinSources {
		v.Confidence += corroborationBonus
		v.Suggest(SuggestCorroborated)
	}

	// Matched case-sensitively against the joined labels.
	if strings.Contains(v.Summary, "meme") || strings.Contains(v.Summary, "funny") {
		v.Confidence -= memePenalty
		v.Suggest(SuggestPossibleMeme)
	}
}

func unsupportedMedia() model.Verdict {
	v := model.NewVerdict(SummaryMediaUnsupported)
	v.Suggest(SuggestVerifyManually)
	return v
}
