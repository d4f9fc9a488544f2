/**
* Name: 			client.go
* Description: 		레슨 서비스(REST) 클라이언트
* Workflow: 		시뮬레이션 스텝 조회 (scenario_data), 완료 점수 전달
 */

package lms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"AwarenessSimulator_SecurityProject/internal/scenario"
)

var (
	ErrStepNotFound  = errors.New("lesson step not found")
	ErrNotSimulation = errors.New("lesson step is not a simulation")
)

// StepRecord is the lesson step as returned by the lesson service.
type StepRecord struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	StepType     string          `json:"step_type"`
	ScenarioData json.RawMessage `json:"scenario_data"`
}

type CompletionRequest struct {
	Score int `json:"score"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchStep loads a lesson step on behalf of the participant (token is forwarded).
func (c *Client) FetchStep(ctx context.Context, token string, stepID int) (StepRecord, error) {
	var step StepRecord
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/courses/steps/%d/", c.baseURL, stepID), nil)
	if err != nil {
		return step, err
	}
	setAuth(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return step, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return step, ErrStepNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return step, errors.New("lesson service step fetch failed with status: " + resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&step); err != nil {
		return step, err
	}
	return step, nil
}

// FetchScript loads the step and decodes its scenario_data for the step's kind.
func (c *Client) FetchScript(ctx context.Context, token string, stepID int) (scenario.Script, error) {
	step, err := c.FetchStep(ctx, token, stepID)
	if err != nil {
		return scenario.Script{}, err
	}
	kind, ok := scenario.KindForStepType(step.StepType)
	if !ok {
		return scenario.Script{}, fmt.Errorf("%w: %s", ErrNotSimulation, step.StepType)
	}
	if len(step.ScenarioData) == 0 || string(step.ScenarioData) == "null" {
		return scenario.Script{}, fmt.Errorf("%w: step %d has no scenario_data", scenario.ErrInvalidScenario, stepID)
	}
	script, err := scenario.DecodeWithKind(step.ScenarioData, kind)
	if err != nil {
		return scenario.Script{}, err
	}
	script.Key = fmt.Sprintf("step-%d", step.ID)
	script.Title = step.Title
	return script, nil
}

// ReportCompletion forwards the earned score to the lesson-completion endpoint.
func (c *Client) ReportCompletion(ctx context.Context, token string, stepID, score int) error {
	reqBody, err := json.Marshal(CompletionRequest{Score: score})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/courses/steps/%d/complete/", c.baseURL, stepID), bytes.NewBuffer(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	setAuth(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return errors.New("lesson service completion failed with status: " + resp.Status)
	}
	return nil
}

func setAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
