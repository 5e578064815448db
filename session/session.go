package session

import (
	"fmt"

	reimplementer_models "github.com/Hazy142/AI-GitHub-Repo-Analyzer/code_reimplementer/models"
	fetcher_models "github.com/Hazy142/AI-GitHub-Repo-Analyzer/repo_fetcher/models"
)

// RunState is the coarse lifecycle of one analysis run.
type RunState int

const (
	StateIdle RunState = iota
	StateLoading
	StateAnalyzed
	StateReimplemented
	StateError
)

func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateAnalyzed:
		return "analyzed"
	case StateReimplemented:
		return "reimplemented"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Stage is one of the five ordered steps of a run.
type Stage int

const (
	StageFetch Stage = iota
	StageSelect
	StageAnalyze
	StageReimplement
	StageReady

	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageFetch:
		return "Fetching repository"
	case StageSelect:
		return "Selecting relevant files"
	case StageAnalyze:
		return "Analyzing architecture"
	case StageReimplement:
		return "Re-implementing files"
	case StageReady:
		return "Preparing download"
	}
	return "unknown"
}

// StageStatus is the progress of one stage. Complete and Error are terminal.
type StageStatus int

const (
	StatusPending StageStatus = iota
	StatusInProgress
	StatusComplete
	StatusError
)

// Session owns all state accumulated across one run: the fetched and
// selected files, the streamed analysis text, the re-implemented records and
// the per-stage progress. It is mutated only from the single control flow
// driving the run; a UI layer observes it.
type Session struct {
	Repository    *fetcher_models.Repository
	Files         []fetcher_models.SourceFile
	SelectedFiles []fetcher_models.SourceFile
	Analysis      string
	Reimplemented []reimplementer_models.ReimplementedFile

	state  RunState
	stages [stageCount]StageStatus
	err    error
}

// NewSession creates an idle session.
func NewSession() *Session {
	return &Session{state: StateIdle}
}

// Start resets every stage to pending, clears all accumulated data and moves
// the run into the loading state.
func (s *Session) Start() {
	s.Repository = nil
	s.Files = nil
	s.SelectedFiles = nil
	s.Analysis = ""
	s.Reimplemented = nil
	s.stages = [stageCount]StageStatus{}
	s.err = nil
	s.state = StateLoading
}

func (s *Session) State() RunState {
	return s.state
}

func (s *Session) StageStatus(stage Stage) StageStatus {
	return s.stages[stage]
}

// Err returns the first fatal failure of the run, if any.
func (s *Session) Err() error {
	return s.err
}

// BeginStage moves a pending stage to in-progress. Only one stage may be
// in-progress at a time.
func (s *Session) BeginStage(stage Stage) error {
	if s.state == StateError {
		return fmt.Errorf("run already failed: %v", s.err)
	}
	if s.stages[stage] != StatusPending {
		return fmt.Errorf("stage %q is not pending", stage)
	}
	for i := range s.stages {
		if s.stages[i] == StatusInProgress {
			return fmt.Errorf("stage %q is still in progress", Stage(i))
		}
	}
	s.stages[stage] = StatusInProgress
	return nil
}

// CompleteStage finalizes an in-progress stage and advances the run state at
// the analyze and re-implement boundaries. Complete is terminal for the stage.
func (s *Session) CompleteStage(stage Stage) error {
	if s.stages[stage] != StatusInProgress {
		return fmt.Errorf("stage %q is not in progress", stage)
	}
	s.stages[stage] = StatusComplete

	switch stage {
	case StageAnalyze:
		s.state = StateAnalyzed
	case StageReimplement:
		s.state = StateReimplemented
	}
	return nil
}

// Fail marks the stage and the whole run as failed. Only the first fatal
// failure is kept; later calls are ignored.
func (s *Session) Fail(stage Stage, err error) {
	if s.state == StateError {
		return
	}
	if s.stages[stage] == StatusInProgress || s.stages[stage] == StatusPending {
		s.stages[stage] = StatusError
	}
	s.state = StateError
	s.err = err
}
