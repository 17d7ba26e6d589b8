package handlers

import "github.com/gofiber/fiber/v2"

// Every endpoint answers with a success flag; failures add an error string
// and nothing else, so storage detail never leaks to clients.

func respond(c *fiber.Ctx, status int, data fiber.Map) error {
	payload := fiber.Map{"success": true}
	for key, value := range data {
		payload[key] = value
	}
	return c.Status(status).JSON(payload)
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
