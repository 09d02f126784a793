package domain

import (
	"fmt"
	"time"
)

// GetDefaultModel retrieves the default generation model from configuration.
// Returns an error if the default model is not found.
func (c *Config) GetDefaultModel() (ModelDefinition, error) {
	if c.Preferences.DefaultModel == "" {
		return ModelDefinition{}, fmt.Errorf("no default model configured")
	}

	for _, model := range c.Models {
		if model.Name == c.Preferences.DefaultModel {
			return model, nil
		}
	}

	return ModelDefinition{}, fmt.Errorf("default model %s not found in configuration", c.Preferences.DefaultModel)
}

// GetCriticModel returns the model used for scoring. It falls back to the default model.
func (c *Config) GetCriticModel() (ModelDefinition, error) {
	if c.Preferences.CriticModel == "" {
		return c.GetDefaultModel()
	}
	model, ok := c.FindModelByName(c.Preferences.CriticModel)
	if !ok {
		return ModelDefinition{}, fmt.Errorf("critic model %s not found in configuration", c.Preferences.CriticModel)
	}
	return model, nil
}

// FindModelByName searches for a model by its name.
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// ResolveModel picks the named model, or the default when name is empty.
// A name that matches no configured entry is treated as a raw model id on the default
// model's endpoint, so ad-hoc ids such as "gpt-4o-mini" work without a config entry.
func (c *Config) ResolveModel(name string) (ModelDefinition, error) {
	if name == "" {
		return c.GetDefaultModel()
	}
	if model, ok := c.FindModelByName(name); ok {
		return model, nil
	}
	base, err := c.GetDefaultModel()
	if err != nil {
		return ModelDefinition{}, fmt.Errorf("model %s not configured: %w", name, err)
	}
	base.Name = name
	base.ModelID = name
	return base, nil
}

// HasModel checks if a model with the given name exists in the configuration.
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// GetTimeout returns the provider call timeout.
func (c *Config) GetTimeout() time.Duration {
	if c.Preferences.TimeoutSeconds <= 0 {
		return DefaultProviderTimeout
	}
	return time.Duration(c.Preferences.TimeoutSeconds) * time.Second
}

// GetAppAttr returns the manifest key holding the application object.
func (c *Config) GetAppAttr() string {
	if c.Routes.AppAttr == "" {
		return DefaultAppAttr
	}
	return c.Routes.AppAttr
}

// GetPromptCacheSize returns the number of parsed prompt stores kept in memory.
func (c *Config) GetPromptCacheSize() int {
	if c.Prompts.CacheSize <= 0 {
		return DefaultPromptCacheSize
	}
	return c.Prompts.CacheSize
}

// ValidateConsistency checks the internal consistency of the configuration.
func (c *Config) ValidateConsistency() error {
	if c.Preferences.DefaultModel != "" && !c.HasModel(c.Preferences.DefaultModel) {
		return fmt.Errorf("default model %s does not exist in models list", c.Preferences.DefaultModel)
	}
	if c.Preferences.CriticModel != "" && !c.HasModel(c.Preferences.CriticModel) {
		return fmt.Errorf("critic model %s does not exist in models list", c.Preferences.CriticModel)
	}
	if c.Preferences.DefaultModel != "" && len(c.Models) == 0 {
		return fmt.Errorf("default model is set but no models are configured")
	}
	return nil
}
