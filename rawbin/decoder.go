package rawbin

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tracekit/wavecap/endian"
	"github.com/tracekit/wavecap/errs"
	"github.com/tracekit/wavecap/internal/pool"
	"github.com/tracekit/wavecap/progress"
	"github.com/tracekit/wavecap/series"
)

// Metadata keys specific to the binary decode path.
const (
	KeyElementType     = "Element Type"
	KeyByteOrder       = "Byte Order"
	KeyRequestedOffset = "Requested Offset"
	KeyEffectiveOffset = "Effective Offset"
	KeyAlignment       = "Alignment"
	KeyChannelCount    = "Channel Count"
	KeyChannelIndex    = "Channel Index"
	KeyScale           = "Scale"
	KeyDCOffset        = "DC Offset"
)

// FormatName is the format metadata value reported for raw binary decodes.
const FormatName = "Raw Binary"

// layoutPlan is the resolved read plan for one file/descriptor pair.
type layoutPlan struct {
	sampleBytes     int
	effectiveOffset int64
	sampleCount     int64
}

// planLayout resolves the descriptor against the actual file size: aligns
// the offset, applies the optional length bound (shrunk by the alignment
// delta) and derives the number of complete sample groups available.
func planLayout(desc Descriptor, fileSize int64) (layoutPlan, error) {
	plan := layoutPlan{
		sampleBytes:     desc.SampleBytes(),
		effectiveOffset: desc.EffectiveOffset(),
	}

	avail := fileSize - plan.effectiveOffset
	if desc.Length > 0 {
		remaining := desc.Length - (plan.effectiveOffset - desc.Offset)
		if remaining < avail {
			avail = remaining
		}
	}
	if avail > 0 {
		plan.sampleCount = avail / int64(plan.sampleBytes)
	}

	if plan.sampleCount <= 0 {
		return plan, fmt.Errorf("%w: no samples at offset %d (file size %d)",
			errs.ErrEmptyResult, plan.effectiveOffset, fileSize)
	}

	return plan, nil
}

// Decode reads the raw binary capture at path according to desc and returns
// the normalized series for the selected channel.
//
// The file is streamed in bounded chunks: memory stays proportional to one
// chunk plus the decoded output, never to the file size. Progress is
// reported in payload bytes after every chunk; ctx is observed at the same
// chunk boundaries and aborting maps to errs.ErrCancelled. Incomplete
// trailing sample groups are dropped.
func Decode(ctx context.Context, path string, desc Descriptor, onProgress progress.Func) (series.Metadata, *series.Series, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := desc.Validate(); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open binary capture: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("stat binary capture: %w", err)
	}

	plan, err := planLayout(desc, info.Size())
	if err != nil {
		return nil, nil, err
	}

	if _, err := f.Seek(plan.effectiveOffset, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("seek to payload: %w", err)
	}

	buf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(buf)

	chunkSamples := int64(pool.ChunkBufferDefaultSize / plan.sampleBytes)
	if chunkSamples < 1 {
		chunkSamples = 1
	}

	engine := desc.engine()
	width := desc.Element.Width()
	channelOffset := desc.ChannelIndex * width
	totalBytes := plan.sampleCount * int64(plan.sampleBytes)

	values := make([]float64, 0, plan.sampleCount)

	var readBytes int64
	for remaining := plan.sampleCount; remaining > 0; {
		if ctx.Err() != nil {
			return nil, nil, fmt.Errorf("binary decode aborted: %w", errs.ErrCancelled)
		}

		n := min(chunkSamples, remaining)
		chunkBytes := int(n) * plan.sampleBytes
		buf.EnsureLen(chunkBytes)
		if _, err := io.ReadFull(f, buf.B); err != nil {
			return nil, nil, fmt.Errorf("read samples at offset %d: %w",
				plan.effectiveOffset+readBytes, err)
		}

		for i := 0; i < int(n); i++ {
			raw := desc.Element.decodeElement(engine, buf.B[i*plan.sampleBytes+channelOffset:])
			values = append(values, raw*desc.Scale+desc.DCOffset)
		}

		remaining -= n
		readBytes += int64(chunkBytes)
		onProgress.Report(readBytes, totalBytes, "Decoding samples...")
	}

	times := make([]float64, len(values))
	for i := range times {
		times[i] = float64(i) / desc.SampleRate
	}

	return decodeMetadata(desc, plan), &series.Series{Time: times, Value: values}, nil
}

// DecodeWindow decodes up to maxSamples values of the selected channel
// starting at the descriptor's effective offset. Only the window's bytes are
// read, making it cheap enough to call repeatedly during header scanning.
func DecodeWindow(path string, desc Descriptor, maxSamples int) ([]float64, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open binary capture: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat binary capture: %w", err)
	}

	return decodeWindowAt(f, info.Size(), desc, maxSamples)
}

// decodeWindowAt is the shared preview decoder; f must be seekable.
func decodeWindowAt(f *os.File, fileSize int64, desc Descriptor, maxSamples int) ([]float64, error) {
	plan, err := planLayout(desc, fileSize)
	if err != nil {
		return nil, err
	}

	count := plan.sampleCount
	if int64(maxSamples) < count {
		count = int64(maxSamples)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: empty preview window", errs.ErrEmptyResult)
	}

	if _, err := f.Seek(plan.effectiveOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to preview window: %w", err)
	}

	buf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(buf)
	buf.EnsureLen(int(count) * plan.sampleBytes)

	if _, err := io.ReadFull(f, buf.B); err != nil {
		return nil, fmt.Errorf("read preview window: %w", err)
	}

	engine := desc.engine()
	channelOffset := desc.ChannelIndex * desc.Element.Width()
	values := make([]float64, 0, count)
	for i := 0; i < int(count); i++ {
		raw := desc.Element.decodeElement(engine, buf.B[i*plan.sampleBytes+channelOffset:])
		values = append(values, raw*desc.Scale+desc.DCOffset)
	}

	return values, nil
}

func decodeMetadata(desc Descriptor, plan layoutPlan) series.Metadata {
	md := series.NewMetadata()
	md.Set(series.KeyFormat, FormatName)
	md.Set(series.KeyHorizontalUnits, series.DefaultHorizontalUnits)
	md.Set(series.KeyVerticalUnits, series.DefaultVerticalUnits)
	md.SetFloat(series.KeySampleRate, desc.SampleRate)
	md.Set(KeyElementType, desc.Element.String())
	md.Set(KeyByteOrder, endian.Name(desc.engine()))
	md.Set(KeyRequestedOffset, fmt.Sprintf("%d", desc.Offset))
	md.Set(KeyEffectiveOffset, fmt.Sprintf("%d", plan.effectiveOffset))
	md.Set(KeyAlignment, fmt.Sprintf("%d", plan.sampleBytes))
	md.Set(KeyChannelCount, fmt.Sprintf("%d", desc.ChannelCount))
	md.Set(KeyChannelIndex, fmt.Sprintf("%d", desc.ChannelIndex))
	md.SetFloat(KeyScale, desc.Scale)
	md.SetFloat(KeyDCOffset, desc.DCOffset)

	return md
}
