// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openai

import (
	"github.com/poiesic/grantmatch/ai"
	"github.com/tmc/langchaingo/llms/openai"
)

// clientOptions returns the langchaingo options shared by the embedding and chat clients.
// Azure deployments need the API type and version; everything else is a plain base URL.
func clientOptions(config *ai.Config, host string) []openai.Option {
	opts := []openai.Option{
		openai.WithBaseURL(host),
		openai.WithToken(config.Token()),
	}
	if config.IsAzure() {
		opts = append(opts,
			openai.WithAPIType(openai.APITypeAzure),
			openai.WithAPIVersion(config.AzureAPIVersion),
		)
	}
	return opts
}
