package ecosystem

import (
	"strconv"

	"github.com/Pmuzik/Ecosystem-Project/internal/core"
)

var parameterGroupOrder = []string{"World", "Population", "Habitat", "Deer", "Tree", "Grass", "Wildfire"}

// Parameters reports every tunable grouped by species.
func (w *World) Parameters() core.ParameterSnapshot {
	byGroup := map[string][]core.Parameter{
		"World": {int64Param("seed", "Seed", w.cfg.Seed)},
	}
	for _, f := range w.cfg.intFields() {
		byGroup[f.group] = append(byGroup[f.group], intParam(f.key, f.label, *f.ptr))
	}
	for _, f := range w.cfg.floatFields() {
		byGroup[f.group] = append(byGroup[f.group], floatParam(f.key, f.label, *f.ptr))
	}
	byGroup["Deer"] = append(byGroup["Deer"], core.Parameter{
		Key:   "deer_diet",
		Label: "Diet",
		Type:  core.ParamTypeList,
		Value: dietString(w.cfg.Deer.Diet),
	})

	groups := make([]core.ParameterGroup, 0, len(parameterGroupOrder))
	for _, name := range parameterGroupOrder {
		groups = append(groups, core.ParameterGroup{Name: name, Params: byGroup[name]})
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values the HUD may adjust while running.
// Dimensions and habitat only matter on Reset and are left out.
func (w *World) ParameterControls() []core.ParameterControl {
	var controls []core.ParameterControl
	for _, f := range w.cfg.intFields() {
		if f.group == "World" || f.group == "Habitat" {
			continue
		}
		controls = append(controls, core.ParameterControl{
			Key: f.key, Label: f.group + " " + f.label, Type: core.ParamTypeInt,
			Step: 1, Min: float64(f.min), HasMin: true,
		})
	}
	for _, f := range w.cfg.floatFields() {
		if !f.probability || f.group == "Habitat" {
			continue
		}
		controls = append(controls, core.ParameterControl{
			Key: f.key, Label: f.group + " " + f.label, Type: core.ParamTypeFloat,
			Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true,
		})
	}
	return controls
}

// SetIntParameter updates an integer tunable. Grid dimensions cannot change
// on a live world.
func (w *World) SetIntParameter(key string, value int) bool {
	if key == "w" || key == "h" {
		return false
	}
	for _, f := range w.cfg.intFields() {
		if f.key != key {
			continue
		}
		if value < f.min {
			value = f.min
		}
		*f.ptr = value
		return true
	}
	return false
}

// SetFloatParameter updates a floating point tunable; probabilities are
// clamped to [0, 1].
func (w *World) SetFloatParameter(key string, value float64) bool {
	for _, f := range w.cfg.floatFields() {
		if f.key != key {
			continue
		}
		if value < 0 {
			value = 0
		}
		if f.probability && value > 1 {
			value = 1
		}
		*f.ptr = value
		return true
	}
	return false
}

func dietString(diet []Kind) string {
	s := ""
	for i, k := range diet {
		if i > 0 {
			s += ","
		}
		s += k.String()
	}
	return s
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
