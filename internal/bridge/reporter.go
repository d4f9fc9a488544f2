/**
* Name: 			reporter.go
* Description: 		완료 브리지 (onComplete) 구성
* Workflow: 		점수 수신 -> 진행 상황 저장 (sqlite) -> 레슨 서비스에 완료 전달 -> 지표 집계
 */

package bridge

import (
	"context"
	"log"
	"time"

	"AwarenessSimulator_SecurityProject/internal/scenario"
)

// ProgressStore persists the completed step, e.g. storage.SaveStepProgress.
type ProgressStore func(ctx context.Context, participant string, stepID, score int) error

// Forwarder delivers the score to the lesson-completion endpoint.
type Forwarder interface {
	ReportCompletion(ctx context.Context, token string, stepID, score int) error
}

type Recorder interface {
	Completed(kind scenario.Kind)
	ReportFailed(target string)
}

// Target identifies whose completion is being reported. StepID 0 means a catalog
// scenario that is not attached to a lesson step.
type Target struct {
	Participant string
	Token       string
	StepID      int
	Kind        scenario.Kind
}

type Reporter struct {
	save    ProgressStore
	lms     Forwarder
	metrics Recorder
	timeout time.Duration
}

// NewReporter builds a reporter. Any dependency may be nil and is then skipped.
func NewReporter(save ProgressStore, lms Forwarder, metrics Recorder) *Reporter {
	return &Reporter{
		save:    save,
		lms:     lms,
		metrics: metrics,
		timeout: 10 * time.Second,
	}
}

// Bridge returns the onComplete callback for one playback session.
func (r *Reporter) Bridge(target Target) func(score int) {
	return func(score int) {
		r.Report(context.Background(), target, score)
	}
}

// Report runs every consumer; failures are logged and never reach playback.
func (r *Reporter) Report(ctx context.Context, target Target, score int) {
	log.Printf("Reporter.Report(): %s completed %s step %d with score %d", target.Participant, target.Kind, target.StepID, score)
	if r.metrics != nil {
		r.metrics.Completed(target.Kind)
	}
	if target.StepID == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if r.save != nil {
		if err := r.save(ctx, target.Participant, target.StepID, score); err != nil {
			log.Printf("Reporter.Report(): failed to save step progress: %v", err)
			r.failed("progress")
		}
	}
	if r.lms != nil {
		if err := r.lms.ReportCompletion(ctx, target.Token, target.StepID, score); err != nil {
			log.Printf("Reporter.Report(): failed to forward completion: %v", err)
			r.failed("lms")
		}
	}
}

func (r *Reporter) failed(target string) {
	if r.metrics != nil {
		r.metrics.ReportFailed(target)
	}
}
