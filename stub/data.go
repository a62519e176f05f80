package stub

// Fixture ids are readable on purpose; the client treats ids as opaque.

func fixtures() map[string]*resource {

	return map[string]*resource{

		"languages": {
			records: []map[string]any{
				{"id": "lang-en", "code": "en", "name": "English", "is_default": true},
				{"id": "lang-fr", "code": "fr", "name": "French", "is_default": false},
				{"id": "lang-de", "code": "de", "name": "German", "is_default": false},
			},
		},

		"category-types": {
			records: []map[string]any{
				{"id": "ctype-tech", "code": "technical", "name": "Technical"},
				{"id": "ctype-soft", "code": "soft", "name": "Soft Skills"},
			},
		},

		"categories": {
			textsKey: "category_texts",
			records: []map[string]any{
				{
					"id": "cat-backend", "code": "backend", "type_code": "technical", "position": float64(1),
					"category_texts": []any{
						map[string]any{"language_id": "lang-en", "name": "Backend", "description": "Server side work"},
						map[string]any{"language_id": "lang-fr", "name": "Serveur", "description": "Travail côté serveur"},
					},
				},
				{
					"id": "cat-frontend", "code": "frontend", "type_code": "technical", "position": float64(2),
					"category_texts": []any{
						map[string]any{"language_id": "lang-en", "name": "Frontend"},
					},
				},
				{
					"id": "cat-comms", "code": "communication", "type_code": "soft", "position": float64(3),
					"category_texts": []any{
						map[string]any{"language_id": "lang-en", "name": "Communication"},
						map[string]any{"language_id": "lang-fr", "name": "Communication"},
					},
				},
			},
		},

		"skills": {
			textsKey: "skill_texts",
			records: []map[string]any{
				{
					"id": "skill-go", "code": "go", "category_code": "backend",
					"skill_texts": []any{
						map[string]any{"language_id": "lang-en", "name": "Go"},
					},
				},
				{
					"id": "skill-sql", "code": "sql", "category_code": "backend",
					"skill_texts": []any{
						map[string]any{"language_id": "lang-en", "name": "SQL"},
						map[string]any{"language_id": "lang-fr", "name": "SQL"},
					},
				},
				{
					"id": "skill-listening", "code": "listening", "category_code": "communication",
					"skill_texts": []any{
						map[string]any{"language_id": "lang-en", "name": "Active Listening"},
					},
				},
			},
		},

		"portfolios": {
			textsKey: "portfolio_texts",
			records: []map[string]any{
				{
					"id": "pf-main", "code": "main",
					"portfolio_texts": []any{
						map[string]any{"language_id": "lang-en", "name": "Main Portfolio"},
					},
				},
			},
		},

		"projects": {
			textsKey: "project_texts",
			records: []map[string]any{
				{
					"id": "proj-console", "code": "console", "portfolio_id": "pf-main", "position": float64(1),
					"project_texts": []any{
						map[string]any{"language_id": "lang-en", "name": "Admin Console"},
					},
				},
				{
					"id": "proj-site", "code": "site", "portfolio_id": "pf-main", "position": float64(2),
					"project_texts": []any{
						map[string]any{"language_id": "lang-en", "name": "Public Site"},
						map[string]any{"language_id": "lang-fr", "name": "Site Public"},
					},
				},
				{
					"id": "proj-api", "code": "api", "portfolio_id": "pf-main", "position": float64(3),
					"project_texts": []any{
						map[string]any{"language_id": "lang-en", "name": "Content API"},
					},
				},
			},
		},
	}
}
