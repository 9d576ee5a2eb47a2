package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/at-ishikawa/lessonforge/internal/audio"
	"github.com/at-ishikawa/lessonforge/internal/inference"
	"github.com/at-ishikawa/lessonforge/internal/job"
	"github.com/at-ishikawa/lessonforge/internal/lesson"
	"github.com/at-ishikawa/lessonforge/internal/progress"
	"github.com/at-ishikawa/lessonforge/internal/script"
	"github.com/at-ishikawa/lessonforge/internal/show"
)

// Progress reported before each stage starts.
const (
	ProgressResolving   = 5
	ProgressScript      = 10
	ProgressVocabulary  = 25
	ProgressGrammar     = 40
	ProgressExpressions = 50
	ProgressExercises   = 60
	ProgressAudio       = 75
	ProgressAssembling  = 90
	ProgressSaving      = 95
)

const (
	StepResolving   = "Resolving episode"
	StepScript      = "Fetching script"
	StepVocabulary  = "Extracting vocabulary"
	StepGrammar     = "Extracting grammar"
	StepExpressions = "Extracting expressions"
	StepExercises   = "Generating exercises"
	StepAudio       = "Synthesizing audio"
	StepAssembling  = "Assembling lesson"
	StepSaving      = "Saving lesson"
)

type Dependencies struct {
	Jobs            job.Store
	Resolver        show.Resolver
	Scripts         ScriptSource
	Extractor       inference.ContentExtractor
	Exercises       inference.ExerciseGenerator
	Audio           AudioProcessor
	Lessons         lesson.Repository
	DefaultLanguage string
}

// Orchestrator creates generation jobs and runs their stages on detached goroutines.
type Orchestrator struct {
	jobs            job.Store
	tracker         *progress.Tracker
	resolver        show.Resolver
	scripts         ScriptSource
	extractor       inference.ContentExtractor
	exercises       inference.ExerciseGenerator
	audio           AudioProcessor
	assembler       *lesson.Assembler
	lessons         lesson.Repository
	defaultLanguage string

	now     func() time.Time
	running sync.WaitGroup
}

func NewOrchestrator(deps Dependencies) *Orchestrator {
	defaultLanguage := deps.DefaultLanguage
	if defaultLanguage == "" {
		defaultLanguage = "en"
	}
	return &Orchestrator{
		jobs:            deps.Jobs,
		tracker:         progress.NewTracker(deps.Jobs),
		resolver:        deps.Resolver,
		scripts:         deps.Scripts,
		extractor:       deps.Extractor,
		exercises:       deps.Exercises,
		audio:           deps.Audio,
		assembler:       lesson.NewAssembler(),
		lessons:         deps.Lessons,
		defaultLanguage: defaultLanguage,
		now:             time.Now,
	}
}

// StartGeneration stores a PENDING job and returns its id without waiting for the run.
// The run outlives ctx; only job creation is bound to it.
func (o *Orchestrator) StartGeneration(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	req.ShowID = strings.TrimSpace(req.ShowID)
	req.ExternalID = strings.TrimSpace(req.ExternalID)
	if req.Language == "" {
		req.Language = o.defaultLanguage
	}

	j := job.New(o.now())
	if err := o.jobs.Create(ctx, j); err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}
	slog.Default().Info("lesson generation queued",
		"jobID", j.ID,
		"showID", req.ShowID,
		"externalID", req.ExternalID,
		"season", req.Season,
		"episode", req.Episode,
		"language", req.Language,
	)

	runCtx := context.WithoutCancel(ctx)
	o.running.Add(1)
	go func() {
		defer o.running.Done()
		o.run(runCtx, j.ID, req)
	}()
	return j.ID, nil
}

func (o *Orchestrator) GetStatus(ctx context.Context, jobID string) (job.Job, error) {
	return o.jobs.Get(ctx, jobID)
}

func (o *Orchestrator) ListJobs(ctx context.Context, limit int) ([]job.Job, error) {
	return o.jobs.List(ctx, limit)
}

// Wait blocks until every started run has finished or ctx is done.
func (o *Orchestrator) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		o.running.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for running jobs: %w", ctx.Err())
	}
}

func (o *Orchestrator) run(ctx context.Context, jobID string, req Request) {
	defer func() {
		if r := recover(); r != nil {
			o.fail(ctx, jobID, fmt.Errorf("unexpected error: %v", r))
		}
	}()

	start := o.now()
	lessonID, err := o.execute(ctx, jobID, req)
	if err != nil {
		o.fail(ctx, jobID, err)
		return
	}
	slog.Default().Info("lesson generation completed",
		"jobID", jobID,
		"lessonID", lessonID,
		"duration", o.now().Sub(start),
	)
}

func (o *Orchestrator) fail(ctx context.Context, jobID string, cause error) {
	slog.Default().Error("lesson generation failed", "jobID", jobID, "error", cause)
	if err := o.tracker.Fail(ctx, jobID, cause.Error()); err != nil {
		slog.Default().Error("failed to record job failure", "jobID", jobID, "error", err)
	}
}

func (o *Orchestrator) execute(ctx context.Context, jobID string, req Request) (string, error) {
	if err := o.tracker.Start(ctx, jobID, StepResolving); err != nil {
		return "", err
	}

	if req.ExternalID == "" {
		if err := o.tracker.Update(ctx, jobID, ProgressResolving, StepResolving); err != nil {
			return "", err
		}
		externalID, err := o.resolver.ResolveExternalID(ctx, req.ShowID, req.Season, req.Episode)
		if err != nil {
			return "", fmt.Errorf("resolve episode of show %s season %d episode %d: %w", req.ShowID, req.Season, req.Episode, err)
		}
		req.ExternalID = externalID
	}

	if err := o.tracker.Update(ctx, jobID, ProgressScript, StepScript); err != nil {
		return "", err
	}
	scriptText, err := o.scripts.Fetch(ctx, script.Key{
		ExternalID: req.ExternalID,
		Season:     req.Season,
		Episode:    req.Episode,
		Language:   req.Language,
	})
	if err != nil {
		return "", err
	}

	var content lesson.Content
	if err := o.tracker.Update(ctx, jobID, ProgressVocabulary, StepVocabulary); err != nil {
		return "", err
	}
	if content.Vocabulary, err = o.extractor.ExtractVocabulary(ctx, scriptText, req.Genre); err != nil {
		return "", fmt.Errorf("extract vocabulary: %w", err)
	}

	if err := o.tracker.Update(ctx, jobID, ProgressGrammar, StepGrammar); err != nil {
		return "", err
	}
	if content.Grammar, err = o.extractor.ExtractGrammar(ctx, scriptText); err != nil {
		return "", fmt.Errorf("extract grammar: %w", err)
	}

	if err := o.tracker.Update(ctx, jobID, ProgressExpressions, StepExpressions); err != nil {
		return "", err
	}
	if content.Expressions, err = o.extractor.ExtractExpressions(ctx, scriptText); err != nil {
		return "", fmt.Errorf("extract expressions: %w", err)
	}

	if err := o.tracker.Update(ctx, jobID, ProgressExercises, StepExercises); err != nil {
		return "", err
	}
	if content.Exercises, err = o.exercises.GenerateExercises(ctx, content.Vocabulary, content.Grammar, content.Expressions); err != nil {
		return "", fmt.Errorf("generate exercises: %w", err)
	}

	if err := o.tracker.Update(ctx, jobID, ProgressAudio, StepAudio); err != nil {
		return "", err
	}
	o.attachAudio(ctx, jobID, &content)

	if err := o.tracker.Update(ctx, jobID, ProgressAssembling, StepAssembling); err != nil {
		return "", err
	}
	assembled, err := o.assembler.Assemble(lesson.Source{
		ShowID:     req.ShowID,
		ExternalID: req.ExternalID,
		Season:     req.Season,
		Episode:    req.Episode,
		Language:   req.Language,
		Title:      req.Title,
		Genre:      req.Genre,
	}, content)
	if err != nil {
		return "", err
	}

	if err := o.tracker.Update(ctx, jobID, ProgressSaving, StepSaving); err != nil {
		return "", err
	}
	saved, err := o.lessons.Save(ctx, assembled)
	if err != nil {
		return "", fmt.Errorf("save lesson: %w", err)
	}

	if err := o.tracker.Complete(ctx, jobID, saved.ID); err != nil {
		return "", err
	}
	return saved.ID, nil
}

// attachAudio fills AudioURL of vocabulary and expressions. Items whose audio failed keep an empty URL.
func (o *Orchestrator) attachAudio(ctx context.Context, jobID string, content *lesson.Content) {
	items := make([]audio.Item, 0, len(content.Vocabulary)+len(content.Expressions))
	for _, v := range content.Vocabulary {
		items = append(items, audio.Item{Kind: audio.KindVocabulary, Text: v.Term})
	}
	for _, e := range content.Expressions {
		items = append(items, audio.Item{Kind: audio.KindExpression, Text: e.Phrase})
	}
	if len(items) == 0 {
		return
	}

	results := o.audio.Process(ctx, items)
	missing := 0
	urlAt := func(i int) string {
		if i >= len(results) || results[i].Err != nil {
			missing++
			return ""
		}
		return results[i].URL
	}
	for i := range content.Vocabulary {
		content.Vocabulary[i].AudioURL = urlAt(i)
	}
	offset := len(content.Vocabulary)
	for i := range content.Expressions {
		content.Expressions[i].AudioURL = urlAt(offset + i)
	}
	if missing > 0 {
		slog.Default().Warn("some lesson items have no audio", "jobID", jobID, "missing", missing, "total", len(items))
	}
}
