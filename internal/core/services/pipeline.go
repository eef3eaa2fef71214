// Package services implements the driving ports on top of the driven
// ports. It contains the core pipeline logic and no infrastructure code.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/kavya-labs/kavya-cli/internal/core/domain"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driven"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driving"
	"github.com/kavya-labs/kavya-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.Annotator = (*Pipeline)(nil)

// DefaultSystemMessage is the annotation instruction used when no system
// message file is configured.
const DefaultSystemMessage = `You are a scholar of Hindi and Urdu poetry. For the poem below, provide:
1. A transliteration into the Latin script.
2. A faithful English translation, preserving the verse structure.
3. A short explanation of the poem's imagery, allusions and metre.

Keep the original text intact and present the three sections in order.`

// Pipeline runs the annotation pipeline: read the input document, group
// its blocks into chunks, call the provider once per chunk in index order,
// and persist each result as soon as it arrives.
//
// Processing is strictly sequential. Providers rate-limit aggressively and
// the output must preserve poem order, so there is nothing to gain from
// parallel dispatch.
type Pipeline struct {
	settings *domain.Settings
	source   driven.DocumentSource
	chunker  driven.Chunker
	llm      driven.LLMService
	sink     driven.DocumentSink
	prompts  driven.PromptStore

	// limiter spaces provider calls, including retries, by the configured
	// request delay.
	limiter *rate.Limiter
}

// NewPipeline creates a pipeline from its collaborators. The prompt store
// is optional; without it the built-in system message is used.
func NewPipeline(
	settings *domain.Settings,
	source driven.DocumentSource,
	chunker driven.Chunker,
	llm driven.LLMService,
	sink driven.DocumentSink,
	prompts driven.PromptStore,
) *Pipeline {
	return &Pipeline{
		settings: settings,
		source:   source,
		chunker:  chunker,
		llm:      llm,
		sink:     sink,
		prompts:  prompts,
		limiter:  rate.NewLimiter(rate.Every(settings.RequestDelay), 1),
	}
}

// Run processes every chunk of the input document.
//
// Fatal conditions (unreadable input, authentication rejection, output
// write failure, cancellation) return an error; a chunk exhausting its
// retries does not. The report records terminal state and attempt count
// per chunk either way.
func (p *Pipeline) Run(ctx context.Context) (*driving.RunReport, error) {
	started := time.Now()
	report := &driving.RunReport{
		RunID:      uuid.New().String(),
		OutputPath: p.settings.OutputPath,
	}

	logger.Debug("run %s: starting", report.RunID)

	logger.Section("Read")
	doc, err := p.source.Read(ctx, p.settings.InputPath)
	if err != nil {
		return nil, err
	}
	logger.Info("read %s: %d paragraphs", doc.Path, doc.ParagraphCount)

	blocks := domain.SplitBlocks(doc.Content, p.settings.Separator)
	chunks := p.chunker.Chunk(blocks)
	logger.Info("split into %d blocks, %d chunks", len(blocks), len(chunks))

	if len(chunks) == 0 {
		logger.Warn("input contains no blocks, nothing to do")
		report.Elapsed = time.Since(started)
		return report, nil
	}

	systemMsg := p.systemMessage()
	report.TotalChunks = len(chunks)

	logger.Section("Annotate")
	for _, chunk := range chunks {
		result, err := p.processChunk(ctx, chunk, systemMsg)
		if err != nil {
			// Fatal: auth rejection, output failure or cancellation.
			report.Elapsed = time.Since(started)
			return report, err
		}

		if result.Succeeded() {
			report.Succeeded++
		} else {
			report.Failed++
			report.Failures = append(report.Failures, driving.ChunkFailure{
				ChunkIndex: result.ChunkIndex,
				Attempts:   result.Attempts,
				Reason:     result.FailureReason,
			})
		}
	}

	if err := p.sink.Finalize(); err != nil {
		report.Elapsed = time.Since(started)
		return report, err
	}

	report.Elapsed = time.Since(started)
	return report, nil
}

// processChunk drives one chunk through its state machine:
//
//	Pending -> Calling -> (Retrying -> Calling)* -> Succeeded | Failed
//
// Only transient provider failures are retried, up to MaxRetries extra
// attempts. A successful chunk is persisted before the function returns.
func (p *Pipeline) processChunk(ctx context.Context, chunk domain.Chunk, systemMsg string) (domain.ChunkResult, error) {
	result := domain.ChunkResult{
		ChunkIndex: chunk.Index,
		Source:     chunk.Text,
		State:      domain.ChunkPending,
	}

	opts := driven.GenerateOptions{
		MaxTokens:   p.settings.MaxTokens,
		Temperature: p.settings.Temperature,
	}

	var lastErr error
	for result.Attempts <= p.settings.MaxRetries {
		// Enforce the inter-request delay before every provider call,
		// retries included.
		if err := p.limiter.Wait(ctx); err != nil {
			return result, err
		}

		result.State = domain.ChunkCalling
		result.Attempts++
		logger.Debug("chunk %d (%s): attempt %d/%d", chunk.Index, chunk.ID, result.Attempts, p.settings.MaxRetries+1)

		annotation, err := p.llm.Annotate(ctx, systemMsg, chunk.Text, opts)
		if err == nil {
			result.State = domain.ChunkSucceeded
			result.Annotation = annotation
			logger.Info("chunk %d: succeeded after %d attempt(s)", chunk.Index, result.Attempts)

			if werr := p.sink.Write(result); werr != nil {
				return result, werr
			}
			return result, nil
		}

		if errors.Is(err, domain.ErrAuthFailed) {
			// A rejected credential will fail every remaining chunk too.
			return result, err
		}
		if ctx.Err() != nil {
			// Operator abort, not a provider failure.
			return result, ctx.Err()
		}

		lastErr = err
		if !domain.IsTransient(err) {
			// Malformed request: retrying cannot help this chunk, but
			// other chunks are independent of it.
			break
		}

		if result.Attempts <= p.settings.MaxRetries {
			result.State = domain.ChunkRetrying
			logger.Warn("chunk %d: transient failure, retrying: %v", chunk.Index, err)
		}
	}

	result.State = domain.ChunkFailed
	result.FailureReason = lastErr.Error()
	logger.Warn("chunk %d: failed after %d attempt(s): %v", chunk.Index, result.Attempts, lastErr)
	return result, nil
}

// systemMessage resolves the system instruction, falling back to the
// built-in default when no store is configured or loading fails.
func (p *Pipeline) systemMessage() string {
	if p.prompts == nil {
		return DefaultSystemMessage
	}
	msg, err := p.prompts.Load(driven.PromptAnnotate)
	if err != nil || msg == "" {
		logger.Warn("system message unavailable, using built-in default: %v", err)
		return DefaultSystemMessage
	}
	return msg
}

// Summary renders a one-line human summary of a report.
func Summary(report *driving.RunReport) string {
	return fmt.Sprintf("%d chunk(s): %d succeeded, %d failed",
		report.TotalChunks, report.Succeeded, report.Failed)
}
