package handlers

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

const schemaBaseURL = "https://storenav.local/schemas/"

// 요청 본문 스키마
var (
	pathSchema             *jsonschema.Schema
	robotsStepSchema       *jsonschema.Schema
	waypointSchema         *jsonschema.Schema
	arrivalSchema          *jsonschema.Schema
	rawSchema              *jsonschema.Schema
	taskSchema             *jsonschema.Schema
	simulationConfigSchema *jsonschema.Schema
)

func init() {
	if err := compileSchemas(); err != nil {
		log.Fatalf("❌ 요청 스키마 컴파일 실패: %v", err)
	}
}

// compileSchemas - 임베드된 스키마를 모두 등록한 뒤 컴파일
func compileSchemas() error {
	compiler := jsonschema.NewCompiler()

	entries, err := fs.ReadDir(schemaFiles, "schemas")
	if err != nil {
		return err
	}
	for _, e := range entries {
		data, err := schemaFiles.ReadFile("schemas/" + e.Name())
		if err != nil {
			return err
		}
		if err := compiler.AddResource(schemaBaseURL+e.Name(), bytes.NewReader(data)); err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
	}

	targets := []struct {
		name string
		dst  **jsonschema.Schema
	}{
		{"path.schema.json", &pathSchema},
		{"robots_step.schema.json", &robotsStepSchema},
		{"waypoint.schema.json", &waypointSchema},
		{"arrival.schema.json", &arrivalSchema},
		{"raw.schema.json", &rawSchema},
		{"task.schema.json", &taskSchema},
		{"simulation_config.schema.json", &simulationConfigSchema},
	}
	for _, t := range targets {
		s, err := compiler.Compile(schemaBaseURL + t.name)
		if err != nil {
			return fmt.Errorf("%s: %w", t.name, err)
		}
		*t.dst = s
	}
	return nil
}

// validateJSON - 본문을 스키마로 검증
func validateJSON(body []byte, schema *jsonschema.Schema) error {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("잘못된 JSON: %w", err)
	}
	return schema.Validate(v)
}

// parseBody - 스키마 검증 후 BodyParser 로 디코딩
func parseBody(c *fiber.Ctx, schema *jsonschema.Schema, out interface{}) error {
	if err := validateJSON(c.Body(), schema); err != nil {
		return err
	}
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("잘못된 요청 형식: %w", err)
	}
	return nil
}

// badRequest - 400 응답
func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}
