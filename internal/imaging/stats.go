package imaging

import (
	"math"

	"github.com/anthonynsimon/bild/histogram"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ChannelCounts holds one counter per RGB channel.
type ChannelCounts struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// DiffStats summarizes how two images differ on the comparison canvas.
type DiffStats struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// ChangedPixels counts canvas pixels with any non-zero channel difference.
	ChangedPixels  int     `json:"changed_pixels"`
	ChangedPercent float64 `json:"changed_percent"`

	// MaxChannelDiff is the largest raw absolute channel difference (0-255).
	MaxChannelDiff int `json:"max_channel_diff"`

	// SimilarityScore is the share of pixels whose mean channel difference
	// stays within DiffThreshold, rounded to three decimals (1 = identical).
	SimilarityScore float64 `json:"similarity_score"`

	// AverageColorDiff is the mean over all pixels of the mean channel
	// difference, rounded to two decimals.
	AverageColorDiff float64 `json:"average_color_diff"`

	// MeanDeltaE is the average CIE76 distance in L*a*b* over all pixels.
	MeanDeltaE float64 `json:"mean_delta_e"`

	// Saturated counts, per channel, the pixels whose difference exceeded
	// DiffThreshold and therefore render at full intensity in Compare.
	Saturated ChannelCounts `json:"saturated"`

	Identical bool `json:"identical"`
}

// CompareStats measures the difference between two images on the same
// canvas Compare renders.
func (e Engine) CompareStats(a, b string) (*DiffStats, error) {
	ra, rb, err := e.canvasPair(a, b)
	if err != nil {
		return nil, err
	}

	diff, err := DiffRasters(ra, rb)
	if err != nil {
		return nil, err
	}

	stats := &DiffStats{Width: ra.Width, Height: ra.Height}

	var sumDeltaE, sumColorDiff float64
	dissimilar := 0
	for i := 0; i < len(ra.Pix); i += 3 {
		sum := 0
		for c := 0; c < 3; c++ {
			d := int(absDiff(ra.Pix[i+c], rb.Pix[i+c]))
			sum += d
			if d > stats.MaxChannelDiff {
				stats.MaxChannelDiff = d
			}
		}
		mean := float64(sum) / 3.0
		sumColorDiff += mean
		if mean > DiffThreshold {
			dissimilar++
		}
		if sum == 0 {
			continue
		}
		stats.ChangedPixels++
		sumDeltaE += labColor(ra.Pix[i:i+3]).DistanceLab(labColor(rb.Pix[i : i+3]))
	}

	total := ra.Width * ra.Height
	stats.ChangedPercent = float64(stats.ChangedPixels) / float64(total) * 100
	stats.MeanDeltaE = sumDeltaE / float64(total)
	stats.SimilarityScore = math.Round((1.0-float64(dissimilar)/float64(total))*1000) / 1000
	stats.AverageColorDiff = math.Round(sumColorDiff/float64(total)*100) / 100
	stats.Identical = stats.ChangedPixels == 0

	diffImg, err := diff.Image()
	if err != nil {
		return nil, newError(ErrBufferConstruction, "compare stats", err)
	}
	hist := histogram.NewRGBAHistogram(diffImg)
	stats.Saturated = ChannelCounts{
		R: hist.R.Bins[0xFF],
		G: hist.G.Bins[0xFF],
		B: hist.B.Bins[0xFF],
	}

	return stats, nil
}

func labColor(rgb []uint8) colorful.Color {
	return colorful.Color{
		R: float64(rgb[0]) / 255.0,
		G: float64(rgb[1]) / 255.0,
		B: float64(rgb[2]) / 255.0,
	}
}
