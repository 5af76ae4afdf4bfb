package atmos

// ExposureRates tunes how quickly exposure accumulates and recovers.
type ExposureRates struct {
	WetGain     int `json:"wet_gain"`
	ColdGain    int `json:"cold_gain"`
	HeatGain    int `json:"heat_gain"`
	IndoorDecay int `json:"indoor_decay"`
}

func DefaultExposureRates() ExposureRates {
	return ExposureRates{WetGain: 2, ColdGain: 1, HeatGain: 1, IndoorDecay: 2}
}

// Exposure tracks how the weather is wearing on someone. Each gauge runs
// 0-10; being soaked slows warming back up, and shelter drains all three.
type Exposure struct {
	Wetness int `json:"wetness"`
	Cold    int `json:"cold"`
	Heat    int `json:"heat"`
}

// Apply advances the gauges for one weather update.
func (e *Exposure) Apply(st State, outdoor bool, rates ExposureRates) {
	if !outdoor {
		e.Wetness = max(0, e.Wetness-rates.IndoorDecay)
		e.Heat = max(0, e.Heat-rates.IndoorDecay)
		// Drying out comes first; cold lingers while still wet.
		coldDecay := rates.IndoorDecay
		if e.Wetness > 0 {
			coldDecay = 1
		}
		e.Cold = max(0, e.Cold-coldDecay)
		return
	}

	switch st.Type {
	case Rain, Storm:
		e.Wetness = min(10, e.Wetness+rates.WetGain*gainScale(st.Intensity))
	case Sleet:
		e.Wetness = min(10, e.Wetness+rates.WetGain*gainScale(st.Intensity))
		e.Cold = min(10, e.Cold+rates.ColdGain*gainScale(st.Intensity))
	case Snow:
		e.Cold = min(10, e.Cold+rates.ColdGain*gainScale(st.Intensity))
	case Heatwave:
		e.Heat = min(10, e.Heat+rates.HeatGain)
	default:
		e.Wetness = max(0, e.Wetness-1)
	}

	switch st.Temperature {
	case TempCold:
		e.Cold = min(10, e.Cold+rates.ColdGain)
		e.Heat = max(0, e.Heat-1)
	case TempHot:
		e.Cold = max(0, e.Cold-1)
	case TempMild, TempWarm:
		e.Heat = max(0, e.Heat-1)
		if e.Wetness == 0 {
			e.Cold = max(0, e.Cold-1)
		}
	}
}

func gainScale(i Intensity) int {
	switch i {
	case IntensityModerate:
		return 2
	case IntensityHeavy:
		return 3
	}
	return 1
}

// Discomfort returns a short description of the worst gauge, if any gauge
// is high enough to matter.
func (e *Exposure) Discomfort() (string, bool) {
	switch {
	case e.Cold >= 7 && e.Wetness >= 5:
		return "You are soaked through and shivering violently.", true
	case e.Cold >= 7:
		return "The cold has sunk deep into your bones.", true
	case e.Heat >= 7:
		return "You are dizzy and drenched in sweat from the heat.", true
	case e.Wetness >= 7:
		return "You are completely soaked.", true
	case e.Cold >= 4:
		return "You shiver in the chill.", true
	case e.Heat >= 4:
		return "The heat is becoming hard to bear.", true
	case e.Wetness >= 4:
		return "Your clothes cling to you, damp and heavy.", true
	}
	return "", false
}
