package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Command names the interpreter can map a free-text message onto.
const (
	CommandCheckToday         = "CheckToday"
	CommandCheckDate          = "CheckDate"
	CommandWeeklyForecast     = "WeeklyForecast"
	CommandWhitewaterForecast = "WhitewaterForecast"
	CommandCasualForecast     = "CasualForecast"
	CommandGeneralQuery       = "GeneralQuery"
)

// AgentResponse defines the structured output from the OpenAI agent.
type AgentResponse struct {
	CommandName string `json:"command_name" jsonschema_description:"The command to execute: CheckToday, CheckDate, WeeklyForecast, WhitewaterForecast, CasualForecast, or GeneralQuery"`
	RiverName   string `json:"river_name" jsonschema_description:"The river the user asked about, matched to the known list, or empty"`
	Date        string `json:"date" jsonschema_description:"The target date in YYYY-MM-DD format when the user asked about a specific day, otherwise empty"`
	UserMessage string `json:"user_message" jsonschema_description:"A short friendly message to show back to the user"`
}

// OpenAIService defines the interface for interacting with the OpenAI agent.
type OpenAIService interface {
	InterpretUserQuery(ctx context.Context, userMessage string, knownRivers []string) (*AgentResponse, error)
}

// openAIServiceImpl implements the OpenAIService interface.
type openAIServiceImpl struct {
	client openai.Client
	schema interface{}
}

// GenerateSchema generates a JSON schema for a given type.
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}

// NewOpenAIService creates and initializes a new OpenAIService.
func NewOpenAIService() (OpenAIService, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	schema := GenerateSchema[AgentResponse]()

	return &openAIServiceImpl{
		client: client,
		schema: schema,
	}, nil
}

// InterpretUserQuery sends a message to the OpenAI agent and returns the structured response.
func (s *openAIServiceImpl) InterpretUserQuery(ctx context.Context, userMessage string, knownRivers []string) (*AgentResponse, error) {
	systemPrompt := fmt.Sprintf(`You are a seasoned river guide turned chat assistant for a paddling trip planner. You know gauge readings, wind, and whitewater grades inside out, and you keep answers short and practical.

Your mission is to parse user requests about paddling conditions and map them onto the planner's commands.

List of known rivers: %s

Behavior:
1. "Can I paddle today?", "conditions now", or similar:
   - command_name = "CheckToday"
2. The user names a specific day or date ("Saturday", "June 14th", "tomorrow"):
   - command_name = "CheckDate"
   - date: that day resolved to YYYY-MM-DD; leave empty if you cannot resolve it.
3. "What's the best day this week?", "weekly outlook":
   - command_name = "WeeklyForecast"
4. The user asks about whitewater, rapids, or Class III+ runs:
   - command_name = "WhitewaterForecast"
5. The user asks for easy, flat, family, or beginner paddling:
   - command_name = "CasualForecast"
6. Greetings, small talk, or anything else:
   - command_name = "GeneralQuery"
   - user_message: a brief friendly reply nudging them toward asking about conditions.

When the user names a river, match it to the known list and set river_name; otherwise leave it empty.
Always set user_message to a one-line confirmation of what you are doing.

Output **strictly** in JSON.`, strings.Join(knownRivers, ", "))

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "agent_response",
		Description: openai.String("Structured response containing command, river name, date, and user message"),
		Schema:      s.schema,
		Strict:      openai.Bool(true),
	}

	respFormat := openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
	}

	chat, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userMessage),
		},
		ResponseFormat: respFormat,
		Model:          openai.ChatModelGPT4o,
	})

	if err != nil {
		return nil, fmt.Errorf("error calling OpenAI API: %w", err)
	}

	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return nil, errors.New("received empty response from OpenAI")
	}

	var agentResp AgentResponse
	err = json.Unmarshal([]byte(chat.Choices[0].Message.Content), &agentResp)
	if err != nil {
		log.Printf("Failed to unmarshal OpenAI response: %s\nRaw response: %s", err, chat.Choices[0].Message.Content)
		return nil, fmt.Errorf("error unmarshalling OpenAI response: %w", err)
	}

	return &agentResp, nil
}
