package assets

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Manifest описывает набор текстур, который клиент должен загрузить
// до первого кадра. Пути указываются относительно каталога манифеста.
type Manifest struct {
	Textures map[string]string `json:"textures"`
}

// Texture именованная текстура из манифеста
type Texture struct {
	Name string
	Path string
}

// Assets полностью загруженный набор ресурсов. Значение неизменяемо:
// загрузка выполняется один раз до старта игрового цикла и не повторяется.
type Assets struct {
	textures map[string]Texture
}

// Load читает манифест и параллельно проверяет доступность всех файлов.
// Любая недоступная текстура фатальна для настройки сцены: возвращается
// первая ошибка, повторных попыток нет.
func Load(path string, logger *log.Logger) (*Assets, error) {
	if logger == nil {
		logger = log.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение манифеста %s: %w", path, err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("разбор манифеста %s: %w", path, err)
	}

	baseDir := filepath.Dir(path)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	textures := make(map[string]Texture, len(manifest.Textures))

	for name, rel := range manifest.Textures {
		wg.Add(1)
		go func(name, rel string) {
			defer wg.Done()

			full := filepath.Join(baseDir, rel)
			if _, statErr := os.Stat(full); statErr != nil {
				logger.Printf("[Assets] Текстура %s недоступна: %v", name, statErr)
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("текстура %s (%s): %w", name, full, statErr)
				}
				mu.Unlock()
				return
			}

			mu.Lock()
			textures[name] = Texture{Name: name, Path: rel}
			mu.Unlock()
			logger.Printf("[Assets] Загружена текстура %s -> %s", name, rel)
		}(name, rel)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return &Assets{textures: textures}, nil
}

// Empty возвращает пустой набор ресурсов. Используется ботом и тестами,
// где клиентские текстуры не нужны.
func Empty() *Assets {
	return &Assets{textures: make(map[string]Texture)}
}

// Texture возвращает текстуру по имени
func (a *Assets) Texture(name string) (Texture, bool) {
	t, ok := a.textures[name]
	return t, ok
}

// TexturePath возвращает путь текстуры или пустую строку, если её нет.
// Отсутствие текстуры не ошибка: клиент подставит цвет материала.
func (a *Assets) TexturePath(name string) string {
	if t, ok := a.textures[name]; ok {
		return t.Path
	}
	return ""
}

// Len возвращает количество загруженных текстур
func (a *Assets) Len() int {
	return len(a.textures)
}
