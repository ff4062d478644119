package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bugdesk.app/api-server/internal/model"
	"bugdesk.app/api-server/internal/store"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	lru "github.com/hashicorp/golang-lru/v2"
)

// SearchService answers free-text queries over a project's issues by asking
// an LLM to translate the request into SQL. Generated statements are cached
// per (project, message, user) and only SELECTs ever reach the database.
type SearchService interface {
	SearchByNaturalLanguage(ctx context.Context, projectID, actorID int64, userMessage string) ([]model.Issue, error)
}

const nlSystemPromptFormat = `Given the following SQL tables, your job is to write queries that return issues in the current project given a user's request. Use the current user_id only when the user uses the phrase "to me". Write PostgreSQL statements without explanation.
Format)
` + "```sql" + `
ORDER BY reported_date DESC;
` + "```" + `

CREATE TABLE users (
  id BIGINT PRIMARY KEY,
  username VARCHAR(255) NOT NULL UNIQUE,
  password VARCHAR(255) NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('ADMIN', 'PL', 'DEV', 'TESTER'))
);

CREATE TABLE projects (
  id BIGINT PRIMARY KEY,
  name VARCHAR(255) NOT NULL UNIQUE
);

CREATE TABLE issues (
  id BIGINT PRIMARY KEY,
  title VARCHAR(255) NOT NULL,
  description TEXT NOT NULL,
  reporter_id BIGINT NOT NULL REFERENCES users(id),
  reported_date TIMESTAMPTZ NOT NULL,
  fixer_id BIGINT REFERENCES users(id),
  assignee_id BIGINT REFERENCES users(id),
  priority TEXT NOT NULL CHECK (priority IN ('BLOCKER', 'CRITICAL', 'MAJOR', 'MINOR', 'TRIVIAL')),
  status TEXT NOT NULL CHECK (status IN ('NEW', 'ASSIGNED', 'FIXED', 'RESOLVED', 'CLOSED', 'REOPENED')),
  project_id BIGINT NOT NULL REFERENCES projects(id)
);

CREATE TABLE comments (
  id BIGINT PRIMARY KEY,
  issue_id BIGINT NOT NULL REFERENCES issues(id),
  user_id BIGINT NOT NULL REFERENCES users(id),
  content TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL
);

--Info
Current project_id %d
Current user_id %d`

type searchService struct {
	issueStore store.IssueStore
	client     anthropic.Client
	model      anthropic.Model
	queryCache *lru.Cache[string, string]
	enabled    bool
}

func NewSearchService(issueStore store.IssueStore, apiKey string) SearchService {
	cache, _ := lru.New[string, string](512)
	return &searchService{
		issueStore: issueStore,
		client:     anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:      anthropic.ModelClaude3_5HaikuLatest,
		queryCache: cache,
		enabled:    apiKey != "",
	}
}

var ErrSearchDisabled = fmt.Errorf("natural-language search is not configured")

func (s *searchService) SearchByNaturalLanguage(ctx context.Context, projectID, actorID int64, userMessage string) ([]model.Issue, error) {
	if !s.enabled {
		return nil, ErrSearchDisabled
	}

	cacheKey := fmt.Sprintf("%d::%s::%d", projectID, userMessage, actorID)
	sqlQuery, cached := s.queryCache.Get(cacheKey)
	if !cached {
		generated, err := s.generateQuery(ctx, projectID, actorID, userMessage)
		if err != nil {
			return nil, err
		}
		sqlQuery = generated
		s.queryCache.Add(cacheKey, sqlQuery)
	}

	// Only plain SELECTs are ever executed; anything else the model came up
	// with yields an empty result, not an error.
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(sqlQuery)), "SELECT") {
		slog.WarnContext(ctx, "generated query is not a SELECT, returning empty result",
			"project_id", projectID)
		return []model.Issue{}, nil
	}

	return s.issueStore.SearchRaw(ctx, sqlQuery)
}

func (s *searchService) generateQuery(ctx context.Context, projectID, actorID int64, userMessage string) (string, error) {
	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     s.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: fmt.Sprintf(nlSystemPromptFormat, projectID, actorID)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMessage)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("generating query: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("empty model response")
	}

	query := stripSQLFences(message.Content[0].Text)
	slog.DebugContext(ctx, "generated search query", "project_id", projectID, "query", query)
	return query, nil
}

func stripSQLFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```sql")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.ReplaceAll(s, ";", "")
	return strings.TrimSpace(s)
}
