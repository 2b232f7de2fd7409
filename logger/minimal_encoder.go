package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the colors of one console theme
type palette struct {
	fg        string
	time      string
	component string
	accent    string
	number    string
	yellow    string
	red       string
	redBg     string
	yellowBg  string
}

var themes = map[string]palette{
	// Everforest Dark (natural forest greens)
	"everforest": {
		fg:        "\x1b[38;5;223m", // Soft beige (#d3c6aa)
		time:      "\x1b[38;5;107m", // Mid green (#83c092)
		component: "\x1b[38;5;208m", // Autumn orange (#e69875)
		accent:    "\x1b[38;5;109m", // Blue-green (#7fbbb3)
		number:    "\x1b[38;5;108m", // Bright green (#a7c080)
		yellow:    "\x1b[38;5;179m", // Soft yellow (#dbbc7f)
		red:       "\x1b[38;5;167m", // Warm red (#e67e80)
		redBg:     "\x1b[48;5;52m",
		yellowBg:  "\x1b[48;5;58m",
	},
	// Gruvbox Dark (warm, muted)
	"gruvbox": {
		fg:        "\x1b[38;5;223m", // Soft cream (#ebdbb2)
		time:      "\x1b[38;5;108m", // Muted cyan-green (#8ec07c)
		component: "\x1b[38;5;214m", // Soft yellow (#fabd2f)
		accent:    "\x1b[38;5;109m", // Soft blue (#83a598)
		number:    "\x1b[38;5;175m", // Muted purple (#d3869b)
		yellow:    "\x1b[38;5;214m",
		red:       "\x1b[38;5;167m", // Warm red (#fb4934)
		redBg:     "\x1b[48;5;88m",
		yellowBg:  "\x1b[48;5;58m",
	},
}

// Current active theme (log.theme in hookgen.toml)
var currentTheme = "everforest"

// SetTheme configures the color scheme for console log output.
// Unknown themes are ignored.
func SetTheme(theme string) {
	if _, ok := themes[theme]; ok {
		currentTheme = theme
	}
}

func colors() palette {
	return themes[currentTheme]
}

// minimalEncoder implements a calm, compact console encoder with theme support
// Format: "13:04:35  h.watch  regenerated  container=CarHooks 12ms"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
	fields          []zapcore.Field
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		fields:  append([]zapcore.Field(nil), enc.fields...),
	}
}

// AddString and friends route With(...) fields through the encoder; keep
// string context fields so they are rendered on every entry.
func (enc *minimalEncoder) AddString(key, value string) {
	enc.fields = append(enc.fields, zap.String(key, value))
	enc.Encoder.AddString(key, value)
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := buffer.NewPool().Get()

	final.AppendString(c.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only shown for non-info entries
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(c.component)
		final.AppendString(abbreviateName(ent.LoggerName))
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(c.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	all := append(append([]zapcore.Field(nil), enc.fields...), fields...)
	if rendered := renderFields(all); rendered != "" {
		final.AppendString("  ")
		final.AppendString(rendered)
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for non-info levels
func levelColorString(level zapcore.Level) string {
	c := colors()
	switch level {
	case zapcore.DebugLevel:
		return c.accent + "DEBUG" + colorReset
	case zapcore.WarnLevel:
		return colorBold + c.yellowBg + c.yellow + "WARN" + colorReset
	default:
		return colorBold + c.redBg + c.red + level.CapitalString() + colorReset
	}
}

// abbreviateName shortens component names: hookgen.watch -> h.watch
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// fieldValue extracts the value from a zap field, handling different field types
func fieldValue(field zapcore.Field) string {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", field.Integer)
	case zapcore.BoolType:
		return fmt.Sprintf("%t", field.Integer == 1)
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok {
			return err.Error()
		}
	}
	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}
	return ""
}

// renderFields never drops an entry field: known keys get compact forms, the rest
// are rendered as key=value.
func renderFields(fields []zapcore.Field) string {
	c := colors()
	var values []string
	for _, field := range fields {
		val := fieldValue(field)
		if val == "" {
			continue
		}
		switch field.Key {
		case FieldDurationMS:
			values = append(values, c.number+val+colorReset+"ms")
		case FieldFile:
			values = append(values, c.accent+val+colorReset)
		case FieldCount:
			values = append(values, c.number+val+colorReset)
		default:
			values = append(values, field.Key+"="+val)
		}
	}
	return strings.Join(values, " ")
}
