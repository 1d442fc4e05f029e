package config

// mergeConfigs merges override configuration into base
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Interval != "" {
		result.Interval = override.Interval
	}
	if override.Display != "" {
		result.Display = override.Display
	}
	if override.CommandTimeout != "" {
		result.CommandTimeout = override.CommandTimeout
	}
	if override.TimeFormat != "" {
		result.TimeFormat = override.TimeFormat
	}
	if override.PowerSupplyDir != "" {
		result.PowerSupplyDir = override.PowerSupplyDir
	}
	if override.Batteries != nil {
		result.Batteries = append([]int(nil), override.Batteries...)
	}

	result.Mixer = mergeMixer(result.Mixer, override.Mixer)
	result.Backlight = mergeBacklight(result.Backlight, override.Backlight)

	// Merge extensions
	if override.Extensions != nil {
		merged := make(map[string]interface{}, len(result.Extensions)+len(override.Extensions))
		for k, v := range result.Extensions {
			merged[k] = v
		}
		for key, value := range override.Extensions {
			// If both sides hold a map for the same key, merge one level deep
			if baseMap, ok := merged[key].(map[string]interface{}); ok {
				if overrideMap, ok := value.(map[string]interface{}); ok {
					mergedMap := make(map[string]interface{}, len(baseMap)+len(overrideMap))
					for k, v := range baseMap {
						mergedMap[k] = v
					}
					for k, v := range overrideMap {
						mergedMap[k] = v
					}
					merged[key] = mergedMap
					continue
				}
			}
			merged[key] = value
		}
		result.Extensions = merged
	}

	return &result
}

func mergeMixer(base, override MixerConfig) MixerConfig {
	result := base
	if override.Command != "" {
		result.Command = override.Command
	}
	if override.Args != nil {
		result.Args = append([]string(nil), override.Args...)
	}
	return result
}

func mergeBacklight(base, override BacklightConfig) BacklightConfig {
	result := base
	if override.Source != "" {
		result.Source = override.Source
	}
	if override.Command != "" {
		result.Command = override.Command
	}
	if override.Args != nil {
		result.Args = append([]string(nil), override.Args...)
	}
	if override.SysfsDir != "" {
		result.SysfsDir = override.SysfsDir
	}
	return result
}
