package scene

import (
	"fmt"
	"math"

	"github.com/chazu/surfkit/pkg/curve"
)

// ValidationSeverity indicates whether a validation finding blocks drawing
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks drawing
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	ItemID   ItemID             // which item has the problem (zero if scene-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.ItemID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] item %s: %s", e.Severity, e.ItemID.Short(), e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	ItemID  ItemID
	Message string
}

// ValidationResult bundles errors (blocking) and warnings (advisory)
// from both validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether the result holds no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs the structural checks on the scene and returns the
// findings. An empty slice means the scene is well formed. Validate is
// read-only and never mutates the scene.
func Validate(s *Scene) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateReferences(s)...)
	errs = append(errs, validateNames(s)...)
	errs = append(errs, validateKinds(s)...)
	return errs
}

// ValidateAll runs the structural and geometric tiers and returns a
// ValidationResult with separated errors and warnings.
func ValidateAll(s *Scene) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(s) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{
				ItemID:  e.ItemID,
				Message: e.Message,
			})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}

	geomErrs, geomWarnings := validateGeometry(s)
	result.Errors = append(result.Errors, geomErrs...)
	result.Warnings = append(result.Warnings, geomWarnings...)
	return result
}

// validateReferences checks that the draw order and the name index only
// point at items that exist.
func validateReferences(s *Scene) []ValidationError {
	var errs []ValidationError

	for _, id := range s.Order {
		if _, ok := s.Items[id]; !ok {
			errs = append(errs, ValidationError{
				ItemID:   id,
				Message:  fmt.Sprintf("draw order references missing item %s", id.Short()),
				Severity: SeverityError,
			})
		}
	}
	for name, id := range s.NameIndex {
		if _, ok := s.Items[id]; !ok {
			errs = append(errs, ValidationError{
				ItemID:   id,
				Message:  fmt.Sprintf("name %q references missing item %s", name, id.Short()),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateNames reports items that appear twice in the draw order, which
// happens when two items are given the same name, and unnamed items.
func validateNames(s *Scene) []ValidationError {
	var errs []ValidationError

	seen := make(map[ItemID]bool, len(s.Order))
	for _, id := range s.Order {
		it := s.Items[id]
		if it == nil {
			continue
		}
		if it.Name == "" {
			errs = append(errs, ValidationError{
				ItemID:   id,
				Message:  "item has no name",
				Severity: SeverityWarning,
			})
		}
		if seen[id] {
			errs = append(errs, ValidationError{
				ItemID:   id,
				Message:  fmt.Sprintf("duplicate item name %q", it.Name),
				Severity: SeverityError,
			})
			continue
		}
		seen[id] = true
	}
	return errs
}

// validateKinds checks that every payload matches its item kind.
func validateKinds(s *Scene) []ValidationError {
	var errs []ValidationError

	for _, it := range s.Ordered() {
		var ok bool
		switch it.Kind {
		case ItemMesh:
			_, ok = it.Data.(MeshData)
		case ItemCage:
			_, ok = it.Data.(CageData)
		case ItemCurve:
			_, ok = it.Data.(CurveData)
		}
		if !ok {
			errs = append(errs, ValidationError{
				ItemID:   it.ID,
				Message:  fmt.Sprintf("%s item carries %T payload", it.Kind, it.Data),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// ---------------------------------------------------------------------------
// Geometric validation (errors + warnings)
// ---------------------------------------------------------------------------

func validateGeometry(s *Scene) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	for _, it := range s.Ordered() {
		if !it.Transform.IsFinite() {
			errs = append(errs, geomError(it, "transform is not finite"))
		} else if it.Transform.Det() == 0 {
			warnings = append(warnings, geomWarning(it, "transform is singular; the item collapses to a plane"))
		}

		switch d := it.Data.(type) {
		case MeshData:
			e, w := validateMesh(s, it, d)
			errs = append(errs, e...)
			warnings = append(warnings, w...)
		case CageData:
			errs = append(errs, validateCage(it, d)...)
		case CurveData:
			e, w := validateCurve(it, d)
			errs = append(errs, e...)
			warnings = append(warnings, w...)
		}
	}
	return errs, warnings
}

func validateMesh(s *Scene, it *Item, d MeshData) ([]ValidationError, []ValidationWarning) {
	if d.Mesh == nil {
		return []ValidationError{geomError(it, "mesh is missing")}, nil
	}

	var errs []ValidationError
	var warnings []ValidationWarning

	if err := d.Mesh.Validate(); err != nil {
		errs = append(errs, geomError(it, err.Error()))
	}
	if d.Levels < 0 {
		errs = append(errs, geomError(it, fmt.Sprintf("subdivision levels %d must not be negative", d.Levels)))
	} else if d.Levels > s.Defaults.MaxLevels {
		warnings = append(warnings, geomWarning(it, fmt.Sprintf(
			"%d subdivision levels exceeds %d; face count grows fourfold per level", d.Levels, s.Defaults.MaxLevels)))
	}
	if len(errs) > 0 {
		return errs, warnings
	}

	nonManifold := 0
	for _, n := range d.Mesh.EdgeFaces() {
		if n > 2 {
			nonManifold++
		}
	}
	if nonManifold > 0 {
		warnings = append(warnings, geomWarning(it, fmt.Sprintf(
			"%d edges are shared by more than two faces", nonManifold)))
	}
	return errs, warnings
}

func validateCage(it *Item, d CageData) []ValidationError {
	if d.Cage == nil {
		return []ValidationError{geomError(it, "control cage is missing")}
	}

	var errs []ValidationError
	if err := d.Cage.Validate(); err != nil {
		errs = append(errs, geomError(it, err.Error()))
	}
	for i, v := range d.Cage.Vertices {
		if !v.IsFinite() {
			errs = append(errs, geomError(it, fmt.Sprintf("control point %d is not finite", i)))
			break
		}
	}
	if d.Resolution < 1 {
		errs = append(errs, geomError(it, fmt.Sprintf("resolution %d must be at least 1", d.Resolution)))
	}
	return errs
}

func validateCurve(it *Item, d CurveData) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	for i, p := range d.Points {
		if !finite(p.X) || !finite(p.Y) {
			errs = append(errs, geomError(it, fmt.Sprintf("control point %d is not finite", i)))
			break
		}
	}
	if !finite(d.Spline.Tension) {
		errs = append(errs, geomError(it, "tension is not finite"))
	}
	if d.Spline.Samples < 0 {
		errs = append(errs, geomError(it, fmt.Sprintf("samples %d must not be negative", d.Spline.Samples)))
	}
	if d.TangentLength < 0 {
		errs = append(errs, geomError(it, fmt.Sprintf("tangent length %g must not be negative", d.TangentLength)))
	}
	if len(d.Points) < curve.MinPoints {
		warnings = append(warnings, geomWarning(it, fmt.Sprintf(
			"curve has %d control points; at least %d are needed to draw a segment", len(d.Points), curve.MinPoints)))
	}
	return errs, warnings
}

func geomError(it *Item, msg string) ValidationError {
	return ValidationError{ItemID: it.ID, Message: msg, Severity: SeverityError}
}

func geomWarning(it *Item, msg string) ValidationWarning {
	return ValidationWarning{ItemID: it.ID, Message: msg}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
