package log

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var std = newLogger(os.Stdout)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "ts",
			logrus.FieldKeyMsg:  "action",
		},
	})
	return l
}

// Logger exposes the shared logger for startup messages.
func Logger() *logrus.Logger { return std }

// SetOutput redirects every entry, e.g. to stdout plus a log file.
func SetOutput(w io.Writer) { std.SetOutput(w) }

func entry(c *fiber.Ctx, kind string, fields map[string]any) *logrus.Entry {
	f := logrus.Fields{"kind": kind}
	if len(fields) > 0 {
		f["fields"] = fields
	}
	if c != nil {
		f["ip"] = c.IP()
		f["method"] = c.Method()
		f["path"] = c.Path()
		f["status"] = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			f["req_id"] = rid
		}
		if uid, ok := c.Locals("user_id").(string); ok && uid != "" {
			f["user_id"] = uid
		}
	}
	return std.WithFields(f)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, "app", fields).Info(action)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, "audit", fields).Info(action)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, "security", fields).Warn(action)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry(c, "app", fields)
	if err != nil {
		e = e.WithField("err", err.Error())
	}
	e.Error(action)
}
