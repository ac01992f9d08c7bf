// Package docs registers the Swagger document for the AI Wire API.
package docs

import "github.com/swaggo/swag"

// @title AI Wire API
// @version 1.0
// @description Aggregated AI news from the Hacker News search API

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func init() {
	swag.Register(swag.Name, &swag.Spec{
		InfoInstanceName: "swagger",
		SwaggerTemplate:  docTemplate,
	})
}

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "AI Wire API",
        "description": "Aggregated AI news from the Hacker News search API",
        "version": "1.0.0",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        }
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "produces": ["application/json"],
    "paths": {
        "/articles": {
            "get": {
                "description": "Articles from the last refresh, newest first, optionally narrowed by a search query and a topic",
                "summary": "List Articles",
                "operationId": "getArticles",
                "parameters": [
                    {
                        "name": "q",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "maxLength": 200,
                        "description": "Case-insensitive substring of title, description or source"
                    },
                    {
                        "name": "topic",
                        "in": "query",
                        "required": false,
                        "type": "string",
                        "maxLength": 50,
                        "description": "Topic name the articles were fetched for"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Matching articles",
                        "schema": {
                            "$ref": "#/definitions/ArticlesResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid query parameters"
                    },
                    "429": {
                        "description": "Rate limit exceeded"
                    }
                }
            }
        },
        "/topics": {
            "get": {
                "description": "Configured topics with their query variants, article counts and consecutive failure counts",
                "summary": "List Topics",
                "operationId": "getTopics",
                "responses": {
                    "200": {
                        "description": "Configured topics",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "topics": {
                                    "type": "array",
                                    "items": {
                                        "$ref": "#/definitions/Topic"
                                    }
                                },
                                "count": {
                                    "type": "integer"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/status": {
            "get": {
                "description": "Current status line, refresh state and per-topic failure counts",
                "summary": "Refresh Status",
                "operationId": "getStatus",
                "responses": {
                    "200": {
                        "description": "Refresh status",
                        "schema": {
                            "$ref": "#/definitions/StatusResponse"
                        }
                    }
                }
            }
        },
        "/refresh": {
            "post": {
                "description": "Starts a refresh of all topics unless one is already running",
                "summary": "Refresh Articles",
                "operationId": "refresh",
                "responses": {
                    "202": {
                        "description": "Refresh accepted",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "started": {
                                    "type": "boolean",
                                    "description": "false when a refresh was already in progress"
                                },
                                "message": {
                                    "type": "string"
                                }
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "Article": {
            "type": "object",
            "properties": {
                "title": {
                    "type": "string"
                },
                "display_title": {
                    "type": "string"
                },
                "link": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "source": {
                    "type": "string",
                    "example": "OpenAI • openai.com"
                },
                "topic": {
                    "type": "string"
                },
                "published_at": {
                    "type": "string"
                }
            }
        },
        "Status": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "severity": {
                    "type": "string",
                    "enum": ["info", "loading", "error", "empty"]
                }
            }
        },
        "ArticlesResponse": {
            "type": "object",
            "properties": {
                "articles": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Article"
                    }
                },
                "count": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "summary": {
                    "type": "string",
                    "example": "12 / 240 articles match your search"
                },
                "status": {
                    "$ref": "#/definitions/Status"
                },
                "last_updated": {
                    "type": "string",
                    "format": "date-time"
                },
                "query": {
                    "type": "string"
                },
                "topic": {
                    "type": "string"
                }
            }
        },
        "Topic": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "query_variants": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "articles": {
                    "type": "integer"
                },
                "failures": {
                    "type": "integer"
                }
            }
        },
        "StatusResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "severity": {
                    "type": "string"
                },
                "refreshing": {
                    "type": "boolean"
                },
                "poller_active": {
                    "type": "boolean"
                },
                "last_updated": {
                    "type": "string",
                    "format": "date-time"
                },
                "failures": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                }
            }
        }
    }
}`
