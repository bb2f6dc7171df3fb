package verdict

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sells-group/fakecheck/internal/model"
	"github.com/sells-group/fakecheck/pkg/vision"
	"github.com/sells-group/fakecheck/pkg/vision/mocks"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

func similar(urls ...string) []vision.WebImage {
	out := make([]vision.WebImage, 0, len(urls))
	for _, u := range urls {
		out = append(out, vision.WebImage{URL: u})
	}
	return out
}

func newMediaEngine(t *testing.T, det *vision.WebDetection, err error) (*Engine, *mocks.MockClient) {
	t.Helper()
	vc := mocks.NewMockClient(t)
	vc.On("DetectWeb", mock.Anything, pngBytes).Return(det, err).Once()
	return New(WithVision(vc), WithRetry(noRetry())), vc
}

func imageRequest() model.MediaCheckRequest {
	return model.MediaCheckRequest{Data: pngBytes, ContentType: "image/png", Filename: "a.png"}
}

func TestCheckMedia_VideoUnsupported(t *testing.T) {
	vc := mocks.NewMockClient(t)
	e := New(WithVision(vc))

	v := e.CheckMedia(context.Background(), model.MediaCheckRequest{Data: []byte("x"), ContentType: "video/mp4"})

	vc.AssertNotCalled(t, "DetectWeb", mock.Anything, mock.Anything)
	assert.False(t, v.IsFake)
	assert.InDelta(t, 0.5, v.Confidence, 1e-9)
	assert.Equal(t, SummaryMediaUnsupported, v.Summary)
	assert.Equal(t, []string{SuggestVerifyManually}, v.Suggestions)
	assert.Empty(t, v.Sources)
}

func TestCheckMedia_NoVisionProvider(t *testing.T) {
	v := New().CheckMedia(context.Background(), imageRequest())

	assert.Equal(t, SummaryMediaUnsupported, v.Summary)
	assert.Equal(t, []string{SuggestVerifyManually}, v.Suggestions)
}

func TestCheckMedia_ContentTypeCaseInsensitive(t *testing.T) {
	e, _ := newMediaEngine(t, &vision.WebDetection{}, nil)

	req := imageRequest()
	req.ContentType = "IMAGE/JPEG"
	v := e.CheckMedia(context.Background(), req)

	assert.Equal(t, SummaryNoVerification, v.Summary)
}

func TestCheckMedia_CorroborationNeedsMoreThanThree(t *testing.T) {
	e, _ := newMediaEngine(t, &vision.WebDetection{
		VisuallySimilarImages: similar("https://a/1", "https://a/2", "https://a/3", "https://a/4"),
	}, nil)

	v := e.CheckMedia(context.Background(), imageRequest())

	assert.InDelta(t, 0.7, v.Confidence, 1e-9)
	assert.False(t, v.IsFake)
	assert.Len(t, v.Sources, 4)
	assert.Contains(t, v.Suggestions, SuggestCorroborated)
}

func TestCheckMedia_ThreeSourcesNoBonus(t *testing.T) {
	e, _ := newMediaEngine(t, &vision.WebDetection{
		VisuallySimilarImages: similar("https://a/1", "https://a/2", "https://a/3"),
	}, nil)

	v := e.CheckMedia(context.Background(), imageRequest())

	assert.InDelta(t, 0.5, v.Confidence, 1e-9)
	assert.NotContains(t, v.Suggestions, SuggestCorroborated)
}

func TestCheckMedia_EmptyImageURLsSkipped(t *testing.T) {
	e, _ := newMediaEngine(t, &vision.WebDetection{
		VisuallySimilarImages: similar("https://a/1", "", "https://a/3", "", "https://a/5"),
	}, nil)

	v := e.CheckMedia(context.Background(), imageRequest())

	assert.Equal(t, []string{"https://a/1", "https://a/3", "https://a/5"}, v.Sources)
	assert.InDelta(t, 0.5, v.Confidence, 1e-9)
}

func TestCheckMedia_LabelsAndEntities(t *testing.T) {
	e, _ := newMediaEngine(t, &vision.WebDetection{
		BestGuessLabels: []vision.BestGuessLabel{{Label: "eiffel tower"}, {Label: "paris at night"}},
		WebEntities:     []vision.WebEntity{{Description: "Eiffel Tower"}, {Description: ""}, {Description: "Paris"}},
	}, nil)

	v := e.CheckMedia(context.Background(), imageRequest())

	assert.Equal(t, "eiffel tower, paris at night", v.Summary)
	assert.Equal(t, []string{"Eiffel Tower", "Paris"}, v.Suggestions)
	assert.InDelta(t, 0.5, v.Confidence, 1e-9)
	assert.False(t, v.IsFake)
}

func TestCheckMedia_MemePenalty(t *testing.T) {
	e, _ := newMediaEngine(t, &vision.WebDetection{
		BestGuessLabels: []vision.BestGuessLabel{{Label: "funny cat meme"}},
	}, nil)

	v := e.CheckMedia(context.Background(), imageRequest())

	assert.Equal(t, "funny cat meme", v.Summary)
	assert.InDelta(t, 0.3, v.Confidence, 1e-9)
	assert.True(t, v.IsFake)
	assert.Contains(t, v.Suggestions, SuggestPossibleMeme)
}

func TestCheckMedia_MemeMatchIsCaseSensitive(t *testing.T) {
	e, _ := newMediaEngine(t, &vision.WebDetection{
		BestGuessLabels: []vision.BestGuessLabel{{Label: "Meme Of The Year"}},
	}, nil)

	v := e.CheckMedia(context.Background(), imageRequest())

	assert.InDelta(t, 0.5, v.Confidence, 1e-9)
	assert.NotContains(t, v.Suggestions, SuggestPossibleMeme)
}

func TestCheckMedia_CorroboratedMemeNetsOut(t *testing.T) {
	e, _ := newMediaEngine(t, &vision.WebDetection{
		BestGuessLabels:       []vision.BestGuessLabel{{Label: "meme"}},
		VisuallySimilarImages: similar("https://a/1", "https://a/2", "https://a/3", "https://a/4", "https://a/5"),
	}, nil)

	v := e.CheckMedia(context.Background(), imageRequest())

	assert.InDelta(t, 0.5, v.Confidence, 1e-9)
	assert.False(t, v.IsFake)
	assert.Equal(t, []string{SuggestCorroborated, SuggestPossibleMeme}, v.Suggestions)
}

func TestCheckMedia_ProviderError(t *testing.T) {
	e, _ := newMediaEngine(t, nil, errors.New("quota exceeded"))

	v := e.CheckMedia(context.Background(), imageRequest())

	assert.False(t, v.IsFake)
	assert.InDelta(t, 0.5, v.Confidence, 1e-9)
	assert.Equal(t, SummaryNoVerification, v.Summary)
	assert.Equal(t, []string{SuggestImageUnverified}, v.Suggestions)
	assert.Empty(t, v.Sources)
}

func TestCheckMedia_EmptyUploadSkipsProvider(t *testing.T) {
	vc := mocks.NewMockClient(t)
	e := New(WithVision(vc))

	v := e.CheckMedia(context.Background(), model.MediaCheckRequest{ContentType: "image/png"})

	vc.AssertNotCalled(t, "DetectWeb", mock.Anything, mock.Anything)
	assert.Equal(t, []string{SuggestImageUnverified}, v.Suggestions)
}

func TestCheckMedia_NilDetection(t *testing.T) {
	e, _ := newMediaEngine(t, nil, nil)

	v := e.CheckMedia(context.Background(), imageRequest())

	assert.Equal(t, SummaryNoVerification, v.Summary)
	assert.Empty(t, v.Suggestions)
	assert.InDelta(t, 0.5, v.Confidence, 1e-9)
}
