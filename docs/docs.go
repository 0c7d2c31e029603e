// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/system/info": {
			"get": {
				"operationId": "getSystemInfo",
				"summary": "Get system information",
				"tags": [
					"system"
				],
				"produces": [
					"application/json"
				],
				"parameters": [],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/handler.SystemInfoResponse"
										}
									}
								}
							]
						}
					}
				}
			}
		},
		"/stock/availability": {
			"post": {
				"operationId": "checkStockAvailability",
				"summary": "Check nearby stock",
				"tags": [
					"stock"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/stock.AvailabilityRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"$ref": "#/definitions/stock.StoreAvailabilityResponse"
											}
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"409": {
						"description": "Superseded",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"504": {
						"description": "Gateway Timeout",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/stores": {
			"get": {
				"operationId": "listStores",
				"summary": "List stores",
				"tags": [
					"stores"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Tenant ID",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"name": "search",
						"in": "query"
					},
					{
						"type": "integer",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"name": "page_size",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"$ref": "#/definitions/handler.StoreResponse"
											}
										}
									}
								}
							]
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/stores/{id}": {
			"get": {
				"operationId": "getStore",
				"summary": "Get a store",
				"tags": [
					"stores"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Tenant ID",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"format": "uuid",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/handler.StoreResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/stores/{id}/sync": {
			"post": {
				"operationId": "syncStore",
				"summary": "Reconcile store stock",
				"tags": [
					"stores"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Tenant ID",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"format": "uuid",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "boolean",
						"name": "async",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/handler.SyncReportResponse"
										}
									}
								}
							]
						}
					},
					"202": {
						"description": "Accepted",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/handler.SyncJobResponse"
										}
									}
								}
							]
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/stores/{id}/sync-jobs": {
			"get": {
				"operationId": "listStoreSyncJobs",
				"summary": "Recent sync reports and jobs",
				"tags": [
					"stores"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Tenant ID",
						"name": "X-Tenant-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"format": "uuid",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"name": "limit",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/handler.SyncHistoryResponse"
										}
									}
								}
							]
						}
					}
				}
			}
		},
		"/me/addresses": {
			"get": {
				"operationId": "listAddress",
				"summary": "List addresses",
				"tags": [
					"addresses"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"$ref": "#/definitions/account.AddressResponse"
											}
										}
									}
								}
							]
						}
					}
				}
			},
			"post": {
				"operationId": "createAddress",
				"summary": "Save a new entry",
				"tags": [
					"addresses"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/account.CreateAddressRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/account.AddressResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/me/addresses/default": {
			"get": {
				"operationId": "getDefaultAddress",
				"summary": "Get the default",
				"tags": [
					"addresses"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/account.AddressResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/me/addresses/stream": {
			"get": {
				"operationId": "streamAddress",
				"summary": "Live list over server-sent events",
				"tags": [
					"addresses"
				],
				"produces": [
					"text/event-stream"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "snapshot and heartbeat events",
						"schema": {
							"type": "string"
						}
					}
				}
			}
		},
		"/me/addresses/{id}": {
			"put": {
				"operationId": "updateAddress",
				"summary": "Edit an entry",
				"tags": [
					"addresses"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"format": "uuid",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/account.UpdateAddressRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/account.AddressResponse"
										}
									}
								}
							]
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"operationId": "deleteAddress",
				"summary": "Delete an entry",
				"tags": [
					"addresses"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"format": "uuid",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			},
			"get": {
				"operationId": "getAddress",
				"summary": "Get an entry",
				"tags": [
					"addresses"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"format": "uuid",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/account.AddressResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/me/addresses/{id}/default": {
			"post": {
				"operationId": "setDefaultAddress",
				"summary": "Make an entry the only default",
				"tags": [
					"addresses"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"format": "uuid",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/account.AddressResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/me/payment-methods": {
			"get": {
				"operationId": "listPaymentMethod",
				"summary": "List payment-methods",
				"tags": [
					"payment-methods"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"type": "array",
											"items": {
												"$ref": "#/definitions/account.PaymentMethodResponse"
											}
										}
									}
								}
							]
						}
					}
				}
			},
			"post": {
				"operationId": "createPaymentMethod",
				"summary": "Save a new entry",
				"tags": [
					"payment-methods"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/account.CreatePaymentMethodRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/account.PaymentMethodResponse"
										}
									}
								}
							]
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/me/payment-methods/default": {
			"get": {
				"operationId": "getDefaultPaymentMethod",
				"summary": "Get the default",
				"tags": [
					"payment-methods"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/account.PaymentMethodResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/me/payment-methods/stream": {
			"get": {
				"operationId": "streamPaymentMethod",
				"summary": "Live list over server-sent events",
				"tags": [
					"payment-methods"
				],
				"produces": [
					"text/event-stream"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "snapshot and heartbeat events",
						"schema": {
							"type": "string"
						}
					}
				}
			}
		},
		"/me/payment-methods/{id}": {
			"put": {
				"operationId": "updatePaymentMethod",
				"summary": "Edit an entry",
				"tags": [
					"payment-methods"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"format": "uuid",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/account.UpdatePaymentMethodRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/account.PaymentMethodResponse"
										}
									}
								}
							]
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"operationId": "deletePaymentMethod",
				"summary": "Delete an entry",
				"tags": [
					"payment-methods"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"format": "uuid",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		},
		"/me/payment-methods/{id}/default": {
			"post": {
				"operationId": "setDefaultPaymentMethod",
				"summary": "Make an entry the only default",
				"tags": [
					"payment-methods"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Owner ID",
						"name": "X-Owner-ID",
						"in": "header",
						"required": true
					},
					{
						"type": "string",
						"format": "uuid",
						"description": "ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"allOf": [
								{
									"$ref": "#/definitions/dto.Response"
								},
								{
									"type": "object",
									"properties": {
										"data": {
											"$ref": "#/definitions/account.PaymentMethodResponse"
										}
									}
								}
							]
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/dto.Response"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"dto.Response": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"data": {},
				"error": {
					"$ref": "#/definitions/dto.ErrorInfo"
				}
			}
		},
		"dto.ErrorInfo": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"request_id": {
					"type": "string"
				},
				"details": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/dto.ValidationDetail"
					}
				}
			}
		},
		"dto.ValidationDetail": {
			"type": "object",
			"properties": {
				"field": {
					"type": "string"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"handler.SystemInfoResponse": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"version": {
					"type": "string"
				},
				"go_version": {
					"type": "string"
				},
				"uptime": {
					"type": "string"
				}
			}
		},
		"stock.AvailabilityRequest": {
			"type": "object",
			"properties": {
				"catalog_item_id": {
					"type": "string"
				},
				"external_product_id": {
					"type": "string"
				},
				"latitude": {
					"type": "number"
				},
				"longitude": {
					"type": "number"
				}
			},
			"required": [
				"catalog_item_id"
			]
		},
		"stock.StoreAvailabilityResponse": {
			"type": "object",
			"properties": {
				"store_id": {
					"type": "string"
				},
				"store_name": {
					"type": "string"
				},
				"store_address": {
					"type": "string"
				},
				"distance_km": {
					"type": "number"
				},
				"in_stock": {
					"type": "boolean"
				},
				"checked_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"handler.StoreResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string",
					"format": "uuid"
				},
				"brand_name": {
					"type": "string"
				},
				"brand_tag": {
					"type": "string"
				},
				"external_store_id": {
					"type": "string"
				},
				"last_synced_at": {
					"type": "string",
					"format": "date-time"
				},
				"last_sync_status": {
					"type": "string"
				},
				"version": {
					"type": "integer"
				}
			}
		},
		"handler.SkuResultResponse": {
			"type": "object",
			"properties": {
				"sku": {
					"type": "string"
				},
				"catalog_item_id": {
					"type": "string",
					"format": "uuid"
				},
				"in_stock": {
					"type": "boolean"
				},
				"outcome": {
					"type": "string"
				},
				"error": {
					"type": "string"
				}
			}
		},
		"handler.ChunkFailureResponse": {
			"type": "object",
			"properties": {
				"chunk": {
					"type": "integer"
				},
				"size": {
					"type": "integer"
				},
				"error": {
					"type": "string"
				}
			}
		},
		"handler.SyncReportResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string",
					"format": "uuid"
				},
				"store_id": {
					"type": "string",
					"format": "uuid"
				},
				"external_store_id": {
					"type": "string"
				},
				"brand_tag": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"requested_count": {
					"type": "integer"
				},
				"returned_count": {
					"type": "integer"
				},
				"updated_count": {
					"type": "integer"
				},
				"unmatched_count": {
					"type": "integer"
				},
				"failed_count": {
					"type": "integer"
				},
				"chunk_count": {
					"type": "integer"
				},
				"chunk_failures": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/handler.ChunkFailureResponse"
					}
				},
				"results": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/handler.SkuResultResponse"
					}
				},
				"error": {
					"type": "string"
				},
				"started_at": {
					"type": "string",
					"format": "date-time"
				},
				"completed_at": {
					"type": "string",
					"format": "date-time"
				},
				"duration_ms": {
					"type": "integer"
				}
			}
		},
		"handler.SyncJobResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string",
					"format": "uuid"
				},
				"store_id": {
					"type": "string",
					"format": "uuid"
				},
				"status": {
					"type": "string"
				},
				"error": {
					"type": "string"
				},
				"submitted_at": {
					"type": "string",
					"format": "date-time"
				},
				"started_at": {
					"type": "string",
					"format": "date-time"
				},
				"completed_at": {
					"type": "string",
					"format": "date-time"
				},
				"requested_count": {
					"type": "integer"
				},
				"updated_count": {
					"type": "integer"
				},
				"unmatched_count": {
					"type": "integer"
				}
			}
		},
		"handler.SyncHistoryResponse": {
			"type": "object",
			"properties": {
				"reports": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/handler.SyncReportResponse"
					}
				},
				"jobs": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/handler.SyncJobResponse"
					}
				}
			}
		},
		"account.CreateAddressRequest": {
			"type": "object",
			"properties": {
				"label": {
					"type": "string"
				},
				"recipient_name": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"line1": {
					"type": "string"
				},
				"line2": {
					"type": "string"
				},
				"city": {
					"type": "string"
				},
				"region": {
					"type": "string"
				},
				"postal_code": {
					"type": "string"
				},
				"country": {
					"type": "string"
				},
				"is_default": {
					"type": "boolean"
				}
			},
			"required": [
				"recipient_name",
				"line1",
				"city",
				"country"
			]
		},
		"account.UpdateAddressRequest": {
			"type": "object",
			"properties": {
				"label": {
					"type": "string"
				},
				"recipient_name": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"line1": {
					"type": "string"
				},
				"line2": {
					"type": "string"
				},
				"city": {
					"type": "string"
				},
				"region": {
					"type": "string"
				},
				"postal_code": {
					"type": "string"
				},
				"country": {
					"type": "string"
				},
				"is_default": {
					"type": "boolean"
				},
				"version": {
					"type": "integer"
				}
			},
			"required": [
				"recipient_name",
				"line1",
				"city",
				"country",
				"version"
			]
		},
		"account.AddressResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string",
					"format": "uuid"
				},
				"owner_id": {
					"type": "string",
					"format": "uuid"
				},
				"label": {
					"type": "string"
				},
				"recipient_name": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"line1": {
					"type": "string"
				},
				"line2": {
					"type": "string"
				},
				"city": {
					"type": "string"
				},
				"region": {
					"type": "string"
				},
				"postal_code": {
					"type": "string"
				},
				"country": {
					"type": "string"
				},
				"is_default": {
					"type": "boolean"
				},
				"version": {
					"type": "integer"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"account.CreatePaymentMethodRequest": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string",
					"enum": [
						"card",
						"wallet"
					]
				},
				"brand": {
					"type": "string"
				},
				"last4": {
					"type": "string"
				},
				"expiry_month": {
					"type": "integer"
				},
				"expiry_year": {
					"type": "integer"
				},
				"holder_name": {
					"type": "string"
				},
				"is_default": {
					"type": "boolean"
				}
			},
			"required": [
				"type",
				"brand"
			]
		},
		"account.UpdatePaymentMethodRequest": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string",
					"enum": [
						"card",
						"wallet"
					]
				},
				"brand": {
					"type": "string"
				},
				"last4": {
					"type": "string"
				},
				"expiry_month": {
					"type": "integer"
				},
				"expiry_year": {
					"type": "integer"
				},
				"holder_name": {
					"type": "string"
				},
				"is_default": {
					"type": "boolean"
				},
				"version": {
					"type": "integer"
				}
			},
			"required": [
				"type",
				"brand",
				"version"
			]
		},
		"account.PaymentMethodResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string",
					"format": "uuid"
				},
				"owner_id": {
					"type": "string",
					"format": "uuid"
				},
				"type": {
					"type": "string",
					"enum": [
						"card",
						"wallet"
					]
				},
				"brand": {
					"type": "string"
				},
				"last4": {
					"type": "string"
				},
				"expiry_month": {
					"type": "integer"
				},
				"expiry_year": {
					"type": "integer"
				},
				"holder_name": {
					"type": "string"
				},
				"is_default": {
					"type": "boolean"
				},
				"is_expired": {
					"type": "boolean"
				},
				"version": {
					"type": "integer"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "ShelfSync API",
	Description:      "Nearby stock lookup, store inventory reconciliation and saved customer defaults.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
