package catalog

// JSON Schemas the fixture files are validated against at load time.
// Validating up front keeps the scoring path free of shape probing.

const coverSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "cover_type", "detail"],
		"properties": {
			"id": {"type": "integer", "minimum": 1},
			"cover_type": {"type": "integer", "minimum": 1},
			"detail": {"type": "string", "minLength": 1}
		}
	}
}`

const diseaseSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "name", "cover_type"],
		"properties": {
			"id": {"type": "integer", "minimum": 1},
			"name": {"type": "string", "minLength": 1},
			"cause": {"type": "string"},
			"tip": {"type": "string"},
			"cover_type": {"type": "integer", "minimum": 1}
		}
	}
}`

const breedSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["name", "species", "diseases"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"species": {"type": "integer", "minimum": 1},
			"diseases": {
				"type": "array",
				"items": {"type": "integer", "minimum": 1}
			}
		}
	}
}`
